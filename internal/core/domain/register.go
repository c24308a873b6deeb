package domain

import "time"

// RegisterRow is one line of the tender document register exported for
// a project's Procure tier.
type RegisterRow struct {
	FolderPath  string    `json:"folder_path"`
	DisplayName string    `json:"display_name"`
	Version     int       `json:"version"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
