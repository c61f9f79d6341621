package genres

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Action", "action"},
		{"Science Fiction", "science-fiction"},
		{"Hành Động", "hanh-dong"},
		{"Kinh Dị", "kinh-di"},
		{"Hoạt Hình", "hoat-hinh"},
		{"Tâm Lý - Tình Cảm", "tam-ly-tinh-cam"},
		{"  Phiêu Lưu  ", "phieu-luu"},
		{"Viễn Tưởng", "vien-tuong"},
		{"18+", "18"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
