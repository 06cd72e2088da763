package diario

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const listingFixture = `
<div class="resultado">
  <span class="equipo">Girona</span> 4 - 2 <span class="equipo">Real Madrid</span>
  <a href="/futbol/primera/2023/09/30/cronica/girona-remonta.html" class="enlace-cronica"><span>Ver crónica</span></a>
</div>
<div class="resultado">
  <span class="equipo">Sevilla</span> 1 - 1 <span class="equipo">Osasuna</span>
  <a href="/directo/sevilla-osasuna">Sigue el partido</a>
</div>`

func TestParseChronicles(t *testing.T) {
	found := parseChronicles([]byte(listingFixture), "https://resultados.example.com")
	require.Len(t, found, 1)
	require.Equal(t,
		"https://resultados.example.com/futbol/primera/2023/09/30/cronica/girona-remonta.html",
		found[0].URL)
	require.Contains(t, found[0].Context, "Girona 4 - 2 Real Madrid")
	require.NotContains(t, found[0].Context, "Sevilla")
}

func TestParseChronicles_NoLinks(t *testing.T) {
	require.Empty(t, parseChronicles([]byte("<html><body>jornada aplazada</body></html>"), "https://x"))
}

func TestParseArticle(t *testing.T) {
	page := []byte(`<html><body>
		<h1 class="titular">El Girona asalta Montilivi</h1>
		<h2 class="subtitulo">Stuani culmina la remontada &amp; enciende la liga</h2>
	</body></html>`)

	headline, subheader := parseArticle(page)
	require.Equal(t, "El Girona asalta Montilivi", headline)
	require.Equal(t, "Stuani culmina la remontada & enciende la liga", subheader)
}

func TestDateFromURL(t *testing.T) {
	require.Equal(t, "2023-09-30", dateFromURL("https://x/futbol/primera/2023/09/30/cronica/a.html"))
	require.Equal(t, "", dateFromURL("https://x/futbol/primera/cronica/a.html"))
}

func TestStripTags(t *testing.T) {
	require.Equal(t, "Girona 4 - 2 Real Madrid",
		stripTags(`<span>Girona</span>  4 - 2 <b>Real Madrid</b>`))
}
