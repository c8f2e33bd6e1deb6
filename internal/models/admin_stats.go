package models

// DatasetSummary es el resumen global que sirve /admin/dataset/summary.
// Como los modelos se ajustan en cada petición, lo único persistente que
// hay que vigilar es el tamaño del dataset y la versión usada para
// invalidar el cache de respuestas.
type DatasetSummary struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalGames          int64 `json:"totalGames"`
	TotalInteractions   int64 `json:"totalInteractions"`
	InteractionsRated   int64 `json:"interactionsRated"`
	InteractionsLiked   int64 `json:"interactionsLiked"`
	GamesWithoutContent int64 `json:"gamesWithoutContent"`
	DatasetVersion      int64 `json:"datasetVersion"`
}
