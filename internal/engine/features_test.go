package engine

import (
	"testing"

	"github.com/sajeme/SRI/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helpers para punteros opcionales en fixtures
func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func testDataset() *Dataset {
	users := []models.UserDoc{
		{UserID: 1, Name: "ana", Age: 25, FavoriteGenres: []string{"rol"}},
		{UserID: 2, Name: "bruno", Age: 30},
		{UserID: 3, Name: "carla", Age: 12, FavoriteGenres: []string{"acción"}},
	}
	games := []models.GameDoc{
		{GameID: 10, Name: "Dragón Místico", Categories: []string{"rol"}, Tags: []string{"fantasía"}, MinAge: 0, ReleaseDate: "2020-05-01"},
		{GameID: 11, Name: "Guerra Total", Categories: []string{"acción"}, Tags: []string{"shooter"}, MinAge: 18, ReleaseDate: "2021-03-15"},
		{GameID: 12, Name: "Reino Perdido", Categories: []string{"rol"}, Tags: []string{"fantasía", "aventura"}, MinAge: 0, ReleaseDate: "2019-11-20"},
		{GameID: 13, Name: "Carreras X", Categories: []string{"carreras"}, MinAge: 0, ReleaseDate: "2022-01-10"},
	}
	inters := []models.InteractionDoc{
		{UserID: 1, GameID: 10, Rating: fp(5)},
		{UserID: 1, GameID: 11, Rating: fp(2)},
		{UserID: 2, GameID: 10, Rating: fp(4)},
		{UserID: 2, GameID: 12, Liked: bp(true)},
		{UserID: 2, GameID: 13, Rating: fp(3), HoursPlayed: fp(40)},
	}
	return NewDataset(users, games, inters)
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "juego_de_rol", NormalizeToken("Juego de Rol"))
	assert.Equal(t, "juego_de_rol", NormalizeToken("juego  de   rol"))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestPositiveThresholds(t *testing.T) {
	// 3.5 ya es positivo; 4.0 marca el umbral para anclas de contenido
	justPositive := models.InteractionDoc{Rating: fp(3.5)}
	assert.True(t, Positive(justPositive))
	assert.False(t, HighlyRated(justPositive))

	anchor := models.InteractionDoc{Rating: fp(4)}
	assert.True(t, Positive(anchor))
	assert.True(t, HighlyRated(anchor))

	// like explícito pesa como positivo en ambos umbrales
	liked := models.InteractionDoc{Liked: bp(true)}
	assert.True(t, Positive(liked))
	assert.True(t, HighlyRated(liked))

	low := models.InteractionDoc{Rating: fp(2), Liked: bp(false)}
	assert.False(t, Positive(low))
}

func TestBuildLikedMatrixIncludesAllUsers(t *testing.T) {
	ds := testDataset()
	m := BuildLikedMatrix(ds)

	// todo usuario registrado tiene fila, incluso sin interacciones
	require.Contains(t, m.Rows, 3)
	assert.Empty(t, m.PositiveSet(3))

	pos1 := m.PositiveSet(1)
	assert.True(t, pos1["Dragón Místico"])
	assert.False(t, pos1["Guerra Total"]) // rating 2 no es positivo

	pos2 := m.PositiveSet(2)
	assert.True(t, pos2["Dragón Místico"])
	assert.True(t, pos2["Reino Perdido"]) // like sin rating
	assert.False(t, pos2["Carreras X"])   // rating 3 < 3.5
}

func TestTransactionsStableOrder(t *testing.T) {
	ds := testDataset()
	m := BuildLikedMatrix(ds)

	txs := m.Transactions()
	require.Len(t, txs, 3)
	// orden por userId: la primera fila es la de ana
	assert.True(t, txs[0]["Dragón Místico"])
	assert.False(t, txs[0]["Reino Perdido"])
}

func TestGameTokensNormalized(t *testing.T) {
	g := models.GameDoc{Categories: []string{"Juego de Rol"}, Tags: []string{"Mundo Abierto"}}
	assert.Equal(t, []string{"juego_de_rol", "mundo_abierto"}, GameTokens(&g))

	empty := models.GameDoc{}
	assert.Empty(t, GameTokens(&empty))
}
