package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngochuy-hya/catalog-search-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "iPhone 15 Pro Max", "iphone-15-pro-max"},
		{"vietnamese diacritics", "Điện thoại Samsung Galaxy", "dien-thoai-samsung-galaxy"},
		{"mixed punctuation", "Tai nghe (Bluetooth) - 2024!", "tai-nghe-bluetooth-2024"},
		{"collapses separators", "a   b---c", "a-b-c"},
		{"leading and trailing junk", "  ---Laptop Dell  ", "laptop-dell"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}
