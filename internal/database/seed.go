package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type templateContent struct {
	Tasks     []string `json:"tasks"`
	Documents []string `json:"documents"`
}

type seedTemplate struct {
	name        string
	description string
	level       int
	content     templateContent
}

// standardPhases are the five phases of the AIAG APQP reference manual.
var standardPhases = []seedTemplate{
	{
		name:        "Plan and Define Program",
		description: "Determine customer needs and expectations and plan the quality program.",
		level:       1,
		content: templateContent{
			Tasks:     []string{"Collect voice of the customer", "Define design goals", "Define reliability and quality goals", "Preliminary bill of material", "Preliminary process flow chart"},
			Documents: []string{"Design goals", "Preliminary special characteristics list", "Product assurance plan"},
		},
	},
	{
		name:        "Product Design and Development",
		description: "Develop design features and characteristics into a near-final form.",
		level:       2,
		content: templateContent{
			Tasks:     []string{"Design FMEA", "Design verification", "Design reviews", "Prototype build"},
			Documents: []string{"DFMEA", "Prototype control plan", "Engineering drawings", "Engineering specifications"},
		},
	},
	{
		name:        "Process Design and Development",
		description: "Develop a manufacturing system and its control plans.",
		level:       3,
		content: templateContent{
			Tasks:     []string{"Process flow chart", "Floor plan layout", "Process FMEA", "Measurement systems analysis plan"},
			Documents: []string{"PFMEA", "Pre-launch control plan", "Process instructions", "Packaging standards"},
		},
	},
	{
		name:        "Product and Process Validation",
		description: "Validate the manufacturing process through a significant production run.",
		level:       4,
		content: templateContent{
			Tasks:     []string{"Significant production run", "Measurement systems evaluation", "Preliminary process capability study", "Production validation testing"},
			Documents: []string{"Production control plan", "PPAP submission", "Quality planning sign-off"},
		},
	},
	{
		name:        "Feedback, Assessment and Corrective Action",
		description: "Evaluate outputs, reduce variation and improve customer satisfaction.",
		level:       5,
		content: templateContent{
			Tasks:     []string{"Reduce variation", "Improve customer satisfaction", "Improve delivery and service"},
			Documents: []string{"Lessons learned", "Corrective action reports"},
		},
	},
}

// SeedPhaseTemplates inserts the standard APQP phase templates that are
// missing. Existing templates with the same name are left untouched.
func SeedPhaseTemplates(db *gorm.DB) (int, error) {
	created := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, st := range standardPhases {
			var existing models.PhaseTemplate
			err := tx.Where("name = ?", st.name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up template %q: %w", st.name, err)
			}

			content, err := json.Marshal(st.content)
			if err != nil {
				return err
			}

			level := st.level
			tmpl := models.PhaseTemplate{
				Name:        st.name,
				Description: st.description,
				Content:     datatypes.JSON(content),
				Level:       &level,
			}
			tmpl.Init(time.Now().UTC())

			if err := tx.Create(&tmpl).Error; err != nil {
				return fmt.Errorf("failed to create template %q: %w", st.name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int("created", created).Msg("Phase templates seeded")
	return created, nil
}
