package domain

import "time"

// NetworkSettings constrains the network a facility's calls run over.
type NetworkSettings struct {
	MaxBandwidth     int      `json:"max_bandwidth" yaml:"max_bandwidth" bson:"max_bandwidth"` // kbps
	AllowedIPRanges  []string `json:"allowed_ip_ranges" yaml:"allowed_ip_ranges" bson:"allowed_ip_ranges"`
	VPNRequired      bool     `json:"vpn_required" yaml:"vpn_required" bson:"vpn_required"`
	LatencyThreshold int      `json:"latency_threshold" yaml:"latency_threshold" bson:"latency_threshold"` // ms
}

// DeviceSettings lists the client devices a facility accepts.
type DeviceSettings struct {
	AllowedBrowsers   []string `json:"allowed_browsers" yaml:"allowed_browsers" bson:"allowed_browsers"`
	MinBrowserVersion string   `json:"min_browser_version" yaml:"min_browser_version" bson:"min_browser_version"`
	AllowedDevices    []string `json:"allowed_devices" yaml:"allowed_devices" bson:"allowed_devices"`
	RequireCamera     bool     `json:"require_camera" yaml:"require_camera" bson:"require_camera"`
	RequireMicrophone bool     `json:"require_microphone" yaml:"require_microphone" bson:"require_microphone"`
}

// SecuritySettings holds authentication policy for a facility.
type SecuritySettings struct {
	RequireVPN         bool           `json:"require_vpn" yaml:"require_vpn" bson:"require_vpn"`
	AllowedAuthMethods []string       `json:"allowed_auth_methods" yaml:"allowed_auth_methods" bson:"allowed_auth_methods"`
	SessionTimeout     int            `json:"session_timeout" yaml:"session_timeout" bson:"session_timeout"` // minutes
	MaxFailedAttempts  int            `json:"max_failed_attempts" yaml:"max_failed_attempts" bson:"max_failed_attempts"`
	PasswordPolicy     map[string]any `json:"password_policy" yaml:"password_policy" bson:"password_policy"`
}

// DeploymentSettings describes how the facility's installation is operated.
type DeploymentSettings struct {
	DeploymentType    string         `json:"deployment_type" yaml:"deployment_type" bson:"deployment_type"` // cloud, self-hosted, hybrid
	UpdatePolicy      string         `json:"update_policy" yaml:"update_policy" bson:"update_policy"`       // automatic, manual
	BackupPolicy      map[string]any `json:"backup_policy" yaml:"backup_policy" bson:"backup_policy"`
	MaintenanceWindow map[string]any `json:"maintenance_window" yaml:"maintenance_window" bson:"maintenance_window"`
}

// FacilitySettings is the structured configuration stored on a facility.
type FacilitySettings struct {
	Network        NetworkSettings    `json:"network" yaml:"network" bson:"network"`
	Devices        DeviceSettings     `json:"devices" yaml:"devices" bson:"devices"`
	Security       SecuritySettings   `json:"security" yaml:"security" bson:"security"`
	Deployment     DeploymentSettings `json:"deployment" yaml:"deployment" bson:"deployment"`
	CustomSettings map[string]any     `json:"custom_settings,omitempty" yaml:"custom_settings,omitempty" bson:"custom_settings,omitempty"`
}

// DefaultFacilitySettings returns the settings applied when a facility is
// created without explicit configuration.
func DefaultFacilitySettings() FacilitySettings {
	return FacilitySettings{
		Network: NetworkSettings{
			MaxBandwidth:     1000,
			AllowedIPRanges:  []string{},
			LatencyThreshold: 150,
		},
		Devices: DeviceSettings{
			AllowedBrowsers:   []string{"chrome", "firefox"},
			MinBrowserVersion: "90",
			AllowedDevices:    []string{"desktop", "mobile"},
			RequireCamera:     true,
			RequireMicrophone: true,
		},
		Security: SecuritySettings{
			AllowedAuthMethods: []string{"password"},
			SessionTimeout:     30,
			MaxFailedAttempts:  5,
			PasswordPolicy:     map[string]any{},
		},
		Deployment: DeploymentSettings{
			DeploymentType:    "cloud",
			UpdatePolicy:      "automatic",
			BackupPolicy:      map[string]any{},
			MaintenanceWindow: map[string]any{},
		},
	}
}

// Facility is a tenant: a site whose residents receive visits.
type Facility struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	Settings  FacilitySettings `json:"settings" bson:"settings"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}
