package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatColones(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "₡0"},
		{950, "₡950"},
		{1500, "₡1,500"},
		{25000, "₡25,000"},
		{1234567, "₡1,234,567"},
		{-4200, "-₡4,200"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatColones(c.in))
	}
}
