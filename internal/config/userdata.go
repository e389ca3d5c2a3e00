package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Location is a bucket and prefix pair remembered between sessions
type Location struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix,omitempty"`
}

// UserData holds user-specific settings that are stored locally
type UserData struct {
	MainBucket string    `json:"main_bucket"`
	LastUsed   Location  `json:"last_used"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoadUserData loads user data from ~/.s3-prompt/user.data. A missing or
// unreadable file yields defaults.
func LoadUserData() (*UserData, error) {
	userDataPath, err := getUserDataPath()
	if err != nil {
		return createDefaultUserData(), nil
	}

	if _, err := os.Stat(userDataPath); os.IsNotExist(err) {
		return createDefaultUserData(), nil
	}

	data, err := os.ReadFile(userDataPath)
	if err != nil {
		return createDefaultUserData(), nil
	}

	var userData UserData
	if err := json.Unmarshal(data, &userData); err != nil {
		return createDefaultUserData(), nil
	}

	return &userData, nil
}

// SaveUserData writes user data back to disk
func (ud *UserData) SaveUserData() error {
	userDataPath, err := getUserDataPath()
	if err != nil {
		return err
	}

	ud.UpdatedAt = time.Now()
	if ud.CreatedAt.IsZero() {
		ud.CreatedAt = ud.UpdatedAt
	}

	data, err := json.MarshalIndent(ud, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(userDataPath, data, 0644)
}

// SetMainBucket sets the main bucket and saves to file
func (ud *UserData) SetMainBucket(bucket string) error {
	ud.MainBucket = bucket
	return ud.SaveUserData()
}

// SetLastUsed records where the last selection was made and saves to file
func (ud *UserData) SetLastUsed(bucket, prefix string) error {
	ud.LastUsed = Location{Bucket: bucket, Prefix: prefix}
	return ud.SaveUserData()
}

func createDefaultUserData() *UserData {
	now := time.Now()
	return &UserData{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// getUserDataPath returns the path to the user.data file
func getUserDataPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".s3-prompt")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "user.data"), nil
}
