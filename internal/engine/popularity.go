package engine

// MostPlayed rankea el catálogo por engagement total: suma de horas
// jugadas cuando hay medida positiva, o un conteo unitario por
// interacción cuando no la hay.
func MostPlayed(ds *Dataset, limit int) []Scored {
	engagement := make(map[int]float64)
	for _, it := range ds.Interactions {
		if ds.GameByID(it.GameID) == nil {
			continue
		}
		if it.HoursPlayed != nil && *it.HoursPlayed > 0 {
			engagement[it.GameID] += *it.HoursPlayed
		} else {
			engagement[it.GameID]++
		}
	}

	out := make([]Scored, 0, len(engagement))
	for id, total := range engagement {
		out = append(out, Scored{GameID: id, Score: round2(total)})
	}
	sortScoredStable(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopRated rankea por calificación promedio, solo sobre juegos con al
// menos una calificación válida (los de promedio 0 o sin ratings quedan
// fuera).
func TopRated(ds *Dataset, limit int) []Scored {
	avgs := averageRatings(ds)

	out := make([]Scored, 0, len(avgs))
	for id, avg := range avgs {
		if avg <= 0 {
			continue
		}
		if ds.GameByID(id) == nil {
			continue
		}
		out = append(out, Scored{GameID: id, Score: round2(avg)})
	}
	sortScoredStable(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
