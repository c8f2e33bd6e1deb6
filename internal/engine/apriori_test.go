package engine

import (
	"testing"

	"github.com/sajeme/SRI/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMineEmptyTransactions(t *testing.T) {
	miner := NewRuleMiner()
	assert.Nil(t, miner.Mine(nil))
	assert.Nil(t, miner.Mine([]map[string]bool{}))

	// usuarios registrados sin interacciones: filas de ceros, cero reglas
	zeros := []map[string]bool{{}, {}, {}}
	assert.Empty(t, miner.Mine(zeros))
}

func TestMineRuleProperties(t *testing.T) {
	// A y B aparecen juntos en 3 de 4 transacciones
	txs := []map[string]bool{
		{"A": true, "B": true},
		{"A": true, "B": true, "C": true},
		{"A": true, "B": true},
		{"C": true},
	}
	miner := NewRuleMiner()
	rules := miner.Mine(txs)
	require.NotEmpty(t, rules)

	for _, r := range rules {
		assert.NotEmpty(t, r.Antecedent)
		assert.NotEmpty(t, r.Consequent)
		// antecedente y consecuente son disjuntos
		ant := make(map[string]bool)
		for _, a := range r.Antecedent {
			ant[a] = true
		}
		for _, c := range r.Consequent {
			assert.False(t, ant[c], "consecuente %q presente en el antecedente", c)
		}
		assert.Greater(t, r.Support, 0.0)
		assert.LessOrEqual(t, r.Support, 1.0)
		assert.GreaterOrEqual(t, r.Confidence, MinConfidence)
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}
}

func TestMineKnownConfidence(t *testing.T) {
	// B aparece siempre que aparece A: conf(A->B) = 1.0
	txs := []map[string]bool{
		{"A": true, "B": true},
		{"A": true, "B": true},
		{"B": true},
		{"C": true},
	}
	rules := NewRuleMiner().Mine(txs)

	var found bool
	for _, r := range rules {
		if len(r.Antecedent) == 1 && r.Antecedent[0] == "A" &&
			len(r.Consequent) == 1 && r.Consequent[0] == "B" {
			found = true
			assert.InDelta(t, 1.0, r.Confidence, 1e-9)
			assert.InDelta(t, 0.5, r.Support, 1e-9)
			// lift = conf / sup(B) = 1.0 / 0.75
			assert.InDelta(t, 1.0/0.75, r.Lift, 1e-9)
		}
	}
	assert.True(t, found, "esperaba la regla A -> B")
}

func TestRuleSupportReflectsRegisteredUsers(t *testing.T) {
	// el soporte se calcula sobre la fracción de usuarios registrados:
	// registrar un usuario (aunque no tenga interacciones) cambia el
	// denominador y por tanto el soporte de toda regla existente
	users := []models.UserDoc{
		{UserID: 1, Name: "ana"},
		{UserID: 2, Name: "bruno"},
	}
	games := []models.GameDoc{
		{GameID: 10, Name: "Dragón Místico"},
		{GameID: 12, Name: "Reino Perdido"},
	}
	inters := []models.InteractionDoc{
		{UserID: 1, GameID: 10, Rating: fp(5)},
		{UserID: 1, GameID: 12, Rating: fp(5)},
		{UserID: 2, GameID: 10, Rating: fp(5)},
		{UserID: 2, GameID: 12, Rating: fp(5)},
	}

	miner := NewRuleMiner()

	before := miner.Mine(BuildLikedMatrix(NewDataset(users, games, inters)).Transactions())
	require.NotEmpty(t, before)

	withNewUser := append(users, models.UserDoc{UserID: 3, Name: "carla"})
	after := miner.Mine(BuildLikedMatrix(NewDataset(withNewUser, games, inters)).Transactions())
	require.NotEmpty(t, after)

	// misma regla, soporte distinto (2/2 vs 2/3)
	assert.InDelta(t, 1.0, before[0].Support, 1e-9)
	assert.InDelta(t, 2.0/3.0, after[0].Support, 1e-9)
}

func TestRecommendByRules(t *testing.T) {
	rules := []Rule{
		{Antecedent: []string{"A"}, Consequent: []string{"B"}, Confidence: 0.8},
		{Antecedent: []string{"A"}, Consequent: []string{"C"}, Confidence: 0.6},
		{Antecedent: []string{"A", "B"}, Consequent: []string{"C"}, Confidence: 0.9},
		{Antecedent: []string{"Z"}, Consequent: []string{"D"}, Confidence: 1.0},
	}

	// el usuario ya tiene A y B positivos
	positives := map[string]bool{"A": true, "B": true}
	out := RecommendByRules(rules, positives)
	require.Len(t, out, 1)

	// B queda fuera (ya positivo), D queda fuera (Z no aplica);
	// C gana con la mejor confianza entre sus reglas aplicables
	assert.Equal(t, "C", out[0].Name)
	assert.InDelta(t, 0.9, out[0].Confidence, 1e-9)
	assert.Equal(t, []string{"A", "B"}, out[0].BasedOn)
}

func TestRecommendByRulesNoPositives(t *testing.T) {
	rules := []Rule{{Antecedent: []string{"A"}, Consequent: []string{"B"}, Confidence: 0.8}}
	assert.Nil(t, RecommendByRules(rules, nil))
	assert.Nil(t, RecommendByRules(rules, map[string]bool{}))
}

func TestRecommendByRulesSortedByConfidence(t *testing.T) {
	rules := []Rule{
		{Antecedent: []string{"A"}, Consequent: []string{"B"}, Confidence: 0.3},
		{Antecedent: []string{"A"}, Consequent: []string{"C"}, Confidence: 0.7},
		{Antecedent: []string{"A"}, Consequent: []string{"D"}, Confidence: 0.5},
	}
	out := RecommendByRules(rules, map[string]bool{"A": true})
	require.Len(t, out, 3)
	assert.Equal(t, "C", out[0].Name)
	assert.Equal(t, "D", out[1].Name)
	assert.Equal(t, "B", out[2].Name)
}
