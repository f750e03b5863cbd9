// Package module pulls typed ports out of modkit modules
package module

import modkit "profanity/internal/modkit"

// Module is the modkit module contract
type Module = modkit.Module
