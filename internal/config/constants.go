package config

import "time"

// Base application details
const AppName = "tidetap"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidetap.log"

// Viewer layout
const StatusBarHeight = 1
const DefaultTheme = "dark"
const SystemClipboard = true

// Status bar
const MessageTimeout = 4 * time.Second

// Interaction
const DefaultLongPress = 500 * time.Millisecond
const DefaultTapSlop = 1
const DefaultTabWidth = 4
const DefaultAlign = "center"
