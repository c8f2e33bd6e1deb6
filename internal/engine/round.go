package engine

import "math"

// Redondeos fijos por métrica: similitudes y confianzas a 4 decimales,
// ratings predichos y scores heurísticos a 2 (comparación estable en tests).
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
