package config

import "time"

// Base application details
const AppName = "quicknotepad"
const Version = "0.3.0"
const DefaultConfigFileName = "config.toml"
const DefaultSessionFileName = "tabs.toml"
const DefaultLogFileName = "quicknotepad.log"

// UI Layout
const StatusBarHeight = 1
const DefaultMarginWidth = 4
const DefaultHeaderHeight = 1

const DefaultThemeName = "DevComfort Dark"

// Status Bar
const MessageTimeout = 4 * time.Second

// Editing
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
const DefaultMaxHistory = 500
const DefaultGroupThresholdMs = 500
const DefaultMaxTabs = 10

// Highlighting is re-run this long after the last buffer change.
const HighlightDebounce = 150 * time.Millisecond
