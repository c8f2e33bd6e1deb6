package service

import "errors"

// Errores sentinela del orquestador. Los handlers los mapean con
// errors.Is: "no encontrado" (404) es distinto de "no hay nada que
// recomendar" (404 con otro mensaje) y de "el motor no puede
// recomendar ahora" (503).
var (
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrGameNotFound      = errors.New("juego no encontrado")
	ErrEngineUnavailable = errors.New("motor de recomendación no disponible")
	ErrNoRecommendations = errors.New("no hay recomendaciones disponibles")
	ErrInvalidParams     = errors.New("parámetros inválidos")
)
