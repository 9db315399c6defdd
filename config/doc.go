// SPDX-License-Identifier: MIT

// Package config loads the deployment configuration of a planning run:
// the assembly policies, the solver budget and the logger.
//
// Sources, later ones winning:
//  1. Default();
//  2. a YAML file (Load) or stream (Decode);
//  3. RELIEFROUTE_* environment variables (ApplyEnv).
//
// The result is validated before it is returned. Durations are written as
// Go duration strings ("30s", "2m").
package config
