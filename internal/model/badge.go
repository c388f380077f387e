package model

// Badge is a static achievement definition. Only the id is persisted
// per-user (users.badges); the catalog itself lives in code.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Badge ids. Awarding is monotone: a badge once earned is never removed.
const (
	BadgePremierQuiz         = "premier-quiz"
	BadgeLecteurAssidu       = "lecteur-assidu"
	BadgeSansFaute           = "sans-faute"
	BadgeNiveauIntermediaire = "niveau-intermediaire"
	BadgeNiveauExpert        = "niveau-expert"
)

// BadgeCatalog is the full badge list, in display order.
var BadgeCatalog = []Badge{
	{
		ID:          BadgePremierQuiz,
		Name:        "Premier Quiz",
		Description: "Terminer son tout premier quiz",
		Icon:        "FiPlay",
	},
	{
		ID:          BadgeLecteurAssidu,
		Name:        "Lecteur Assidu",
		Description: "Lire au moins 3 mémofiches",
		Icon:        "FiBookOpen",
	},
	{
		ID:          BadgeSansFaute,
		Name:        "Sans Faute",
		Description: "Obtenir 100% à un quiz",
		Icon:        "FiStar",
	},
	{
		ID:          BadgeNiveauIntermediaire,
		Name:        "Niveau Intermédiaire",
		Description: "Atteindre le niveau Intermédiaire",
		Icon:        "FiTrendingUp",
	},
	{
		ID:          BadgeNiveauExpert,
		Name:        "Niveau Expert",
		Description: "Atteindre le niveau Expert",
		Icon:        "FiAward",
	},
}
