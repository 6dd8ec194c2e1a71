package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavshah/staff-scheduler-api/pkg/models"
	"github.com/arnavshah/staff-scheduler-api/pkg/planner"
)

func planCmd() *cobra.Command {
	var req planner.Request

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a department roster from headline figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planner.BuildPlan(req)
			if err != nil {
				return fmt.Errorf("failed to plan: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), models.NewPlanResponse(plan, ""))
		},
	}

	cmd.Flags().StringVar(&req.Department, "department", "", "Department name")
	cmd.Flags().StringVar(&req.ShiftType, "shift-type", "", "Shift type: 8-hour or 12-hour")
	cmd.Flags().IntVar(&req.StaffCount, "staff-count", 10, "Number of staff on the roster")
	cmd.Flags().IntVar(&req.PatientLoad, "patient-load", 20, "Expected patients per hour")
	cmd.Flags().StringVar(&req.Specialty, "specialty", "", "Specialty: nurse, doctor or other")
	return cmd
}
