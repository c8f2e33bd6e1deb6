package engine

import "github.com/sajeme/SRI/internal/models"

// Dataset es el snapshot en memoria que consumen todos los algoritmos.
// Se carga completo al inicio de cada petición y es propiedad exclusiva
// de esa petición: ningún modelo derivado se comparte ni se persiste.
type Dataset struct {
	Users        []models.UserDoc
	Games        []models.GameDoc
	Interactions []models.InteractionDoc

	usersByID   map[int]*models.UserDoc
	gamesByID   map[int]*models.GameDoc
	interByUser map[int][]models.InteractionDoc
}

// NewDataset construye los índices de acceso por id.
func NewDataset(users []models.UserDoc, games []models.GameDoc, inters []models.InteractionDoc) *Dataset {
	ds := &Dataset{
		Users:        users,
		Games:        games,
		Interactions: inters,
		usersByID:    make(map[int]*models.UserDoc, len(users)),
		gamesByID:    make(map[int]*models.GameDoc, len(games)),
		interByUser:  make(map[int][]models.InteractionDoc),
	}
	for i := range users {
		ds.usersByID[users[i].UserID] = &users[i]
	}
	for i := range games {
		ds.gamesByID[games[i].GameID] = &games[i]
	}
	for _, it := range inters {
		ds.interByUser[it.UserID] = append(ds.interByUser[it.UserID], it)
	}
	return ds
}

func (d *Dataset) UserByID(id int) *models.UserDoc { return d.usersByID[id] }

func (d *Dataset) GameByID(id int) *models.GameDoc { return d.gamesByID[id] }

// GameName devuelve el nombre del juego o "" si no está en el catálogo.
func (d *Dataset) GameName(id int) string {
	if g := d.gamesByID[id]; g != nil {
		return g.Name
	}
	return ""
}

// InteractionsByUser devuelve las interacciones del usuario (nil si no tiene).
func (d *Dataset) InteractionsByUser(id int) []models.InteractionDoc {
	return d.interByUser[id]
}
