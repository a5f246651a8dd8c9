// Package zipcode loads the US ZIP code reference table and validates
// user-supplied ZIP codes against it.
//
// The table bundled into the binary is a small sample covering the seeded
// providers and tests. Deployments point ZIP_DATA_DIR or S3 at the full table.
package zipcode

import (
	"context"
	"errors"

	"hvac-finder/internal/model"
)

// DefaultResourceName is the file name suffix used to locate the reference table.
const DefaultResourceName = "uszips.csv"

// CompleteDatasetMinRecords is the size below which a loaded table is
// treated as a sample. The full US table holds about 41,000 codes.
const CompleteDatasetMinRecords = 30_000

// Configuration errors. Both are fatal at startup.
var (
	ErrResourceNotFound = errors.New("zip code resource not found")
	ErrMissingColumns   = errors.New("zip code resource is missing required columns: zip, city, state_id, state_name")
)

// Validator validates raw ZIP code input.
type Validator interface {
	// Validate never fails: rejections are reported in the result.
	Validate(raw string) model.ValidationResult
}

// Loader loads a reference dataset by resource name.
type Loader interface {
	Load(ctx context.Context, name string) (*Dataset, error)
}
