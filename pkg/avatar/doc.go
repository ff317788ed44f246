// Package avatar defines the avatar configuration value object.
//
// A [Config] describes how a single avatar is displayed: its identity,
// position, color, scale, visibility and rotation speed. Values are
// decoded from the JSON served at /api/avatar-config and are treated as
// immutable: a refresh replaces the whole value, it never patches fields.
//
// # Usage
//
//	cfg, err := avatar.Decode(resp.Body)
//	if err != nil {
//	    return err
//	}
//	m := cfg.Transform(time.Since(start))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package avatar
