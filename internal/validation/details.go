package validation

import (
	"fmt"
	"strings"
)

// Endpoint names a connected database for the details section.
type Endpoint struct {
	Engine   string
	Database string
	Host     string
}

// DatabaseDetail describes one side of the migration.
type DatabaseDetail struct {
	Type         string `json:"type" yaml:"type"`
	Name         string `json:"name" yaml:"name"`
	Host         string `json:"host" yaml:"host"`
	Version      string `json:"version" yaml:"version"`
	DatabaseSize string `json:"database_size" yaml:"database_size"`
	Encoding     string `json:"encoding" yaml:"encoding"`
}

// DatabaseSummary pairs the details of both sides.
type DatabaseSummary struct {
	Source DatabaseDetail `json:"source" yaml:"source"`
	Target DatabaseDetail `json:"target" yaml:"target"`
}

// CollectDetails reads the first row of each detail query result.
func CollectDetails(ep Endpoint, version, size, encoding []Row) (DatabaseDetail, error) {
	d := DatabaseDetail{
		Type: strings.ToUpper(ep.Engine),
		Name: ep.Database,
		Host: ep.Host,
	}
	var err error
	if d.Version, err = scalar(version, "version"); err != nil {
		return DatabaseDetail{}, err
	}
	if d.DatabaseSize, err = scalar(size, "database_size"); err != nil {
		return DatabaseDetail{}, err
	}
	if d.Encoding, err = scalar(encoding, "encoding"); err != nil {
		return DatabaseDetail{}, err
	}
	return d, nil
}

func scalar(rows []Row, field string) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("%s: %w", field, ErrEmptyResult)
	}
	v, problem := display(rows[0], field)
	if problem != "" {
		return "", &MalformedRowError{Field: field, Problem: problem}
	}
	return strings.TrimSpace(v), nil
}
