package engine

import (
	"sort"
	"strings"
)

// Parámetros con los que se minan las reglas en producción.
const (
	MinSupport    = 0.01
	MinConfidence = 0.05
)

// Rule es una regla direccional antecedente -> consecuente.
// Antecedent y Consequent van ordenados lexicográficamente.
type Rule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

// RuleMiner mina itemsets frecuentes nivel a nivel y genera reglas.
type RuleMiner struct {
	MinSupport    float64
	MinConfidence float64
}

func NewRuleMiner() RuleMiner {
	return RuleMiner{MinSupport: MinSupport, MinConfidence: MinConfidence}
}

// separador interno para usar itemsets como key de map
const itemsetSep = "\x1f"

func itemsetKey(items []string) string { return strings.Join(items, itemsetSep) }

func containsAll(tx map[string]bool, items []string) bool {
	for _, it := range items {
		if !tx[it] {
			return false
		}
	}
	return true
}

// Mine enumera los itemsets frecuentes (soporte mínimo sobre la fracción
// de usuarios) y genera reglas filtradas por confianza mínima. El orden
// de descubrimiento es determinista: los items se recorren en orden
// lexicográfico y los niveles en tamaño creciente.
func (m RuleMiner) Mine(transactions []map[string]bool) []Rule {
	n := len(transactions)
	if n == 0 {
		return nil
	}
	total := float64(n)

	// L1: items frecuentes en orden lexicográfico
	counts := make(map[string]int)
	for _, tx := range transactions {
		for item, pos := range tx {
			if pos {
				counts[item]++
			}
		}
	}

	support := make(map[string]float64)
	var level [][]string
	items := make([]string, 0, len(counts))
	for item := range counts {
		items = append(items, item)
	}
	sort.Strings(items)
	for _, item := range items {
		sup := float64(counts[item]) / total
		if sup >= m.MinSupport {
			set := []string{item}
			support[itemsetKey(set)] = sup
			level = append(level, set)
		}
	}

	frequent := append([][]string(nil), level...)

	// niveles k >= 2 por join de prefijos (apriori clásico)
	for len(level) > 1 {
		var next [][]string
		for i := 0; i < len(level); i++ {
			for j := i + 1; j < len(level); j++ {
				a, b := level[i], level[j]
				k := len(a)
				if !equalPrefix(a, b, k-1) {
					break // los itemsets van ordenados: sin prefijo común no hay más joins para i
				}
				cand := make([]string, k+1)
				copy(cand, a)
				cand[k] = b[k-1]

				count := 0
				for _, tx := range transactions {
					if containsAll(tx, cand) {
						count++
					}
				}
				sup := float64(count) / total
				if sup >= m.MinSupport {
					support[itemsetKey(cand)] = sup
					next = append(next, cand)
				}
			}
		}
		frequent = append(frequent, next...)
		level = next
	}

	// generación de reglas: todos los subconjuntos propios no vacíos
	// de cada itemset frecuente de tamaño >= 2
	var rules []Rule
	for _, set := range frequent {
		k := len(set)
		if k < 2 {
			continue
		}
		full := support[itemsetKey(set)]
		for mask := 1; mask < (1<<k)-1; mask++ {
			var ant, cons []string
			for bit := 0; bit < k; bit++ {
				if mask&(1<<bit) != 0 {
					ant = append(ant, set[bit])
				} else {
					cons = append(cons, set[bit])
				}
			}
			antSup, ok := support[itemsetKey(ant)]
			if !ok || antSup == 0 {
				continue
			}
			conf := full / antSup
			if conf < m.MinConfidence {
				continue
			}
			lift := 0.0
			if consSup, ok := support[itemsetKey(cons)]; ok && consSup > 0 {
				lift = conf / consSup
			}
			rules = append(rules, Rule{
				Antecedent: ant,
				Consequent: cons,
				Support:    full,
				Confidence: conf,
				Lift:       lift,
			})
		}
	}
	return rules
}

func equalPrefix(a, b []string, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RuleCandidate es un consecuente recomendado con la mejor confianza
// alcanzada por alguna regla aplicable al usuario.
type RuleCandidate struct {
	Name       string
	Confidence float64
	BasedOn    []string // antecedente de la regla ganadora
}

// RecommendByRules selecciona las reglas cuyo antecedente está contenido
// en el conjunto positivo del usuario, une consecuentes, resta lo ya
// positivo y rankea por la mejor confianza. En empates gana la primera
// regla descubierta (orden estable del miner).
func RecommendByRules(rules []Rule, positives map[string]bool) []RuleCandidate {
	if len(positives) == 0 {
		return nil
	}

	type entry struct {
		conf    float64
		basedOn []string
		order   int
	}
	best := make(map[string]entry)
	var names []string // orden de primera aparición

	for _, r := range rules {
		applies := true
		for _, a := range r.Antecedent {
			if !positives[a] {
				applies = false
				break
			}
		}
		if !applies {
			continue
		}
		for _, c := range r.Consequent {
			if positives[c] {
				continue
			}
			prev, seen := best[c]
			if !seen {
				best[c] = entry{conf: r.Confidence, basedOn: r.Antecedent, order: len(names)}
				names = append(names, c)
			} else if r.Confidence > prev.conf {
				best[c] = entry{conf: r.Confidence, basedOn: r.Antecedent, order: prev.order}
			}
		}
	}

	out := make([]RuleCandidate, 0, len(names))
	for _, name := range names {
		e := best[name]
		out = append(out, RuleCandidate{
			Name:       name,
			Confidence: round4(e.conf),
			BasedOn:    e.basedOn,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}
