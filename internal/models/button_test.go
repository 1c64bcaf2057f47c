package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseButton(t *testing.T) {
	btn, err := ParseButton("Go — https://x.test")
	require.NoError(t, err)
	require.Equal(t, &Button{Label: "Go", URL: "https://x.test"}, btn)
}

func TestParseButtonSplitsOnFirstSeparator(t *testing.T) {
	btn, err := ParseButton("Перейти — https://site.ru/a — b")
	require.NoError(t, err)
	require.Equal(t, "Перейти", btn.Label)
	require.Equal(t, "https://site.ru/a — b", btn.URL)
}

func TestParseButtonTrimsParts(t *testing.T) {
	btn, err := ParseButton("  Купить   —   https://shop.example  ")
	require.NoError(t, err)
	require.Equal(t, "Купить", btn.Label)
	require.Equal(t, "https://shop.example", btn.URL)
}

func TestParseButtonRejects(t *testing.T) {
	cases := map[string]string{
		"no separator":    "Go https://x.test",
		"hyphen instead":  "Go - https://x.test",
		"empty label":     " — https://x.test",
		"empty url":       "Go — ",
		"malformed url":   "Go — not a url",
		"empty input":     "",
		"separator alone": " — ",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			btn, err := ParseButton(input)
			require.ErrorIs(t, err, ErrButtonFormat)
			require.Nil(t, btn)
		})
	}
}
