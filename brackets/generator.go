package brackets

import "github.com/Dosada05/league-tracker/models"

type ScheduleGenerator interface {
	Generate(teams []string) ([]models.Match, error)

	GetName() string
}
