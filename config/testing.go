package config

const testConfig = `
List:
    File: /tmp/mdl-test/mdl.csv
    URL: http://localhost/mdlcsv.php
    MaxAge: 7
    ShowInactive: false
    Checksum: true
Fetch:
    Timeout: 5
LogConfig:
    LogLevel: 3
    LogPath: /tmp/mdl-test/logs
    LogToFile: false
Server:
    Address: 127.0.0.1:8081
    ReadTimeout: 2
    AllowedSubnets: ["127.0.0.0/8", "::1"]
UserConfig:
    UpdateCheckFrequency: 0
`

// LoadTestingConfig loads the hard coded testing config
func LoadTestingConfig() (*Config, error) {
	config := &Config{}

	// Deserialize the yaml file contents into the static config
	if err := loadStaticConfig([]byte(testConfig), &config.S); err != nil {
		return nil, err
	}

	config.S.Version = "v0.0.0+testing"
	config.S.ExactVersion = "v0.0.0+testing"

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}
