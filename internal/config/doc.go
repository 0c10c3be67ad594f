// Package config loads the graph-copier command configuration.
//
// It utilizes Viper for loading configuration from an optional YAML file and
// GRAPHCOPIER_* environment variables, after loading a .env file with godotenv.
// Defaults come from the `default` struct tags.
//
// # Configuration Structure
//
//   - Log: logging level and format
//   - Merge: the merge profile, converted into merge options by Profile.Options
//
// Environment variables map to nested keys with underscores, e.g.
// GRAPHCOPIER_MERGE_UPDATE_COLLECTIONS=true sets merge.update_collections.
// List values may be given comma separated.
//
// # Usage
//
//	cfg, err := config.Load(".", "profile.yaml")
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.Merge.Options()
package config
