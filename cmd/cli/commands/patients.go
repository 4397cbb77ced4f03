package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/ward-allocator/pkg/core/services"
)

// AddPatientCmd creates the addPatient command
func AddPatientCmd(app *AppContext) *cobra.Command {
	var input services.PatientInput

	cmd := &cobra.Command{
		Use:   "addPatient",
		Short: "Add a patient to the stored list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patient, err := services.AddPatient(app.Ctx, app.Database, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Patient added successfully!\n\n")
			fmt.Printf("Patient ID: %s\n", patient.ID)
			fmt.Printf("Name:       %s\n\n", patient.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Patient name")
	cmd.Flags().IntVar(&input.Severity, "severity", 0, "Severity (positive integer)")
	cmd.Flags().IntVar(&input.Beds, "beds", 0, "Beds needed")
	cmd.Flags().IntVar(&input.Vents, "vents", 0, "Ventilators needed")
	cmd.Flags().Float64Var(&input.Survival, "survival", 0, "Survival probability")
	cmd.Flags().BoolVar(&input.NeedsDoctor, "needs-doctor", false, "Patient needs a doctor")
	for _, name := range []string{"name", "severity", "beds", "vents", "survival"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

// ListPatientsCmd creates the listPatients command
func ListPatientsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPatients",
		Short: "List stored patients in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, err := services.ListPatients(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			renderPatients(cmd.OutOrStdout(), patients, app.Labels)
			return nil
		},
	}
}

// EditPatientCmd creates the editPatient command
func EditPatientCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editPatient <patient_id>",
		Short: "Change fields of a stored patient",
		Long:  `Change fields of a stored patient. Only the flags that are given are updated; the patient keeps its ID and position.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := patientUpdateFromFlags(cmd)
			if err != nil {
				return err
			}

			app.Logger.Debug("editPatient command", zap.String("patient_id", args[0]))

			patient, err := services.UpdatePatient(app.Ctx, app.Database, app.Logger, args[0], update)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Patient %s updated successfully!\n\n", patient.Name)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Patient name")
	cmd.Flags().Int("severity", 0, "Severity (positive integer)")
	cmd.Flags().Int("beds", 0, "Beds needed")
	cmd.Flags().Int("vents", 0, "Ventilators needed")
	cmd.Flags().Float64("survival", 0, "Survival probability")
	cmd.Flags().Bool("needs-doctor", false, "Patient needs a doctor")

	return cmd
}

// patientUpdateFromFlags builds an update containing only the flags set on the command line
func patientUpdateFromFlags(cmd *cobra.Command) (services.PatientUpdate, error) {
	var update services.PatientUpdate
	flags := cmd.Flags()

	if flags.Changed("name") {
		v, err := flags.GetString("name")
		if err != nil {
			return update, err
		}
		update.Name = &v
	}
	if flags.Changed("severity") {
		v, err := flags.GetInt("severity")
		if err != nil {
			return update, err
		}
		update.Severity = &v
	}
	if flags.Changed("beds") {
		v, err := flags.GetInt("beds")
		if err != nil {
			return update, err
		}
		update.Beds = &v
	}
	if flags.Changed("vents") {
		v, err := flags.GetInt("vents")
		if err != nil {
			return update, err
		}
		update.Vents = &v
	}
	if flags.Changed("survival") {
		v, err := flags.GetFloat64("survival")
		if err != nil {
			return update, err
		}
		update.Survival = &v
	}
	if flags.Changed("needs-doctor") {
		v, err := flags.GetBool("needs-doctor")
		if err != nil {
			return update, err
		}
		update.NeedsDoctor = &v
	}

	return update, nil
}

// DeletePatientCmd creates the deletePatient command
func DeletePatientCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deletePatient <patient_id>",
		Short: "Remove a patient from the stored list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeletePatient(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Patient %s deleted\n\n", args[0])
			return nil
		},
	}
}

// ClearPatientsCmd creates the clearPatients command
func ClearPatientsCmd(app *AppContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clearPatients",
		Short: "Delete all stored patients (requires --yes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to delete all patient data without --yes")
			}

			if err := services.ClearPatients(app.Ctx, app.Database, app.Logger); err != nil {
				return err
			}

			fmt.Printf("\n✓ All patient data cleared\n\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deleting every stored patient")

	return cmd
}
