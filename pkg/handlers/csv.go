package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

// readHeader reads the first CSV record and maps column names to indexes
func readHeader(r *csv.Reader, required ...string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, badRequest("failed to read header: %v", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, badRequest("missing column %q", name)
		}
	}
	return cols, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseStaffCSV reads a roster with columns id, role, max_hours_per_day, cost_per_hour.
// The role column is optional.
func ParseStaffCSV(r io.Reader) ([]scheduler.StaffMember, error) {
	reader := newCSVReader(r)
	cols, err := readHeader(reader, "id", "max_hours_per_day", "cost_per_hour")
	if err != nil {
		return nil, err
	}

	var staff []scheduler.StaffMember
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, badRequest("staff line %d: %v", line, err)
		}

		maxHours, err := strconv.Atoi(field(record, cols, "max_hours_per_day"))
		if err != nil {
			return nil, badRequest("staff line %d: invalid max_hours_per_day", line)
		}
		cost, err := strconv.ParseFloat(field(record, cols, "cost_per_hour"), 64)
		if err != nil {
			return nil, badRequest("staff line %d: invalid cost_per_hour", line)
		}
		staff = append(staff, scheduler.StaffMember{
			ID:             field(record, cols, "id"),
			Role:           field(record, cols, "role"),
			MaxHoursPerDay: maxHours,
			CostPerHour:    cost,
		})
	}
	return staff, nil
}

// ParseDemandCSV reads a demand curve with a demand column and an optional hour
// column. Without an hour column rows are taken in order; with one, every hour
// from 0 to n-1 must appear exactly once.
func ParseDemandCSV(r io.Reader) ([]int, error) {
	reader := newCSVReader(r)
	cols, err := readHeader(reader, "demand")
	if err != nil {
		return nil, err
	}
	_, hasHour := cols["hour"]

	byHour := map[int]int{}
	var ordered []int
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, badRequest("demand line %d: %v", line, err)
		}

		d, err := strconv.Atoi(field(record, cols, "demand"))
		if err != nil {
			return nil, badRequest("demand line %d: invalid demand", line)
		}
		if !hasHour {
			ordered = append(ordered, d)
			continue
		}
		h, err := strconv.Atoi(field(record, cols, "hour"))
		if err != nil || h < 0 {
			return nil, badRequest("demand line %d: invalid hour", line)
		}
		if _, dup := byHour[h]; dup {
			return nil, badRequest("demand line %d: hour %d listed twice", line, h)
		}
		byHour[h] = d
	}

	if !hasHour {
		return ordered, nil
	}
	demand := make([]int, len(byHour))
	for h, d := range byHour {
		if h >= len(demand) {
			return nil, badRequest("demand hours are not contiguous from 0")
		}
		demand[h] = d
	}
	return demand, nil
}

// ParseDemandList parses a comma separated list such as "5, 5, 4"
func ParseDemandList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	demand := make([]int, len(parts))
	for i, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, badRequest("invalid demand value %q at position %d", p, i)
		}
		demand[i] = d
	}
	return demand, nil
}

// WriteShiftsCSV renders shifts with their cost, one row per shift
func WriteShiftsCSV(w io.Writer, shifts []scheduler.Shift, staff []scheduler.StaffMember) error {
	rates := make(map[string]float64, len(staff))
	for _, s := range staff {
		rates[s.ID] = s.CostPerHour
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"staff_id", "role", "start_hour", "end_hour", "hours", "cost"}); err != nil {
		return err
	}
	for _, sh := range shifts {
		err := writer.Write([]string{
			sh.StaffID,
			sh.Role,
			strconv.Itoa(sh.StartHour),
			strconv.Itoa(sh.EndHour),
			strconv.Itoa(sh.Hours),
			fmt.Sprintf("%.2f", float64(sh.Hours)*rates[sh.StaffID]),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
