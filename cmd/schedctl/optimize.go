package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnavshah/staff-scheduler-api/pkg/handlers"
	"github.com/arnavshah/staff-scheduler-api/pkg/models"
	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

func optimizeCmd() *cobra.Command {
	var path, format string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Schedule a roster against a demand curve from a request file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(path)
			if err != nil {
				return err
			}

			staff := req.StaffMembers()
			res, err := scheduler.OptimizeSchedule(req.Demand, staff)
			if err != nil {
				return fmt.Errorf("failed to optimize: %w", err)
			}

			switch format {
			case "csv":
				return handlers.WriteShiftsCSV(cmd.OutOrStdout(), res.Shifts, staff)
			case "json":
				return writeJSON(cmd.OutOrStdout(), models.NewScheduleResponse(res, ""))
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Request file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or csv")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
