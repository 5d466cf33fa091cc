package config

import "time"

// Base application details
const AppName = "tidefind"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidefind.log"

// UI
const StatusBarHeight = 1
const MessageTimeout = 4 * time.Second
const DefaultMaxHistory = 100

// Find defaults
const DefaultWrap = true
const DefaultUnescapeReplacement = true
