//go:build unit

package equipment_test

import "github.com/google/uuid"

var equipmentID = uuid.MustParse("0b8f6c1e-5d1c-4a57-9a43-0f3a2b7c1d10")
