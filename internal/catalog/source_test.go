package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFileSource_JSONArray(t *testing.T) {
	p := writeFile(t, "garments.json", `[
		{"description":"Red hoodie","img":"r.png","gender":"Female","season":"Winter","price":350},
		{"description":"Scarf","img":"s.png","price":12.5}
	]`)

	got, err := FileSource{Path: p}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Garment{
		{Description: "Red hoodie", Img: "r.png", Gender: "Female", Season: "Winter", Price: 350},
		{Description: "Scarf", Img: "s.png", Price: 12.5},
	}, got)
}

func TestFileSource_JSONObject(t *testing.T) {
	p := writeFile(t, "garments.json", `{"garments":[{"description":"Cap","img":"c.png","price":5}]}`)

	got, err := FileSource{Path: p}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Cap", got[0].Description)
}

func TestFileSource_YAML(t *testing.T) {
	p := writeFile(t, "garments.yaml", `
garments:
  - description: Linen shirt
    img: shirt.png
    gender: Male
    season: Summer
    price: 310
`)

	got, err := FileSource{Path: p}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Garment{{Description: "Linen shirt", Img: "shirt.png", Gender: "Male", Season: "Summer", Price: 310}}, got)
}

func TestFileSource_YAMLSequence(t *testing.T) {
	p := writeFile(t, "garments.yml", `
- description: Beanie
  img: beanie.png
  price: 85
`)

	got, err := FileSource{Path: p}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 85.0, got[0].Price)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, "broken.json", `[{"description":`)
	_, err = FileSource{Path: p}.Load(context.Background())
	require.Error(t, err)
}

func TestFileSource_EmptyArray(t *testing.T) {
	p := writeFile(t, "garments.json", `[]`)

	got, err := FileSource{Path: p}.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestLoadSeed(t *testing.T) {
	p := writeFile(t, "garments.json", `[{"description":"Cap","img":"c.png","price":5}]`)

	s := NewMemStore()
	n, err := LoadSeed(context.Background(), FileSource{Path: p}, s)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, s.Len())
}

func TestLoadSeed_RepoDataset(t *testing.T) {
	s := NewMemStore()
	n, err := LoadSeed(context.Background(), FileSource{Path: filepath.Join("..", "..", "data", "garments.json")}, s)
	require.NoError(t, err)
	require.Positive(t, n)

	all, err := s.All(context.Background())
	require.NoError(t, err)
	for _, g := range all {
		require.NoError(t, g.Validate())
		require.NotEqual(t, Wildcard, g.Gender)
		require.NotEqual(t, Wildcard, g.Season)
	}
}
