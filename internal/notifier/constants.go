package notifier

// Embed colors per notification kind.
const (
	ColorCreated  = 0x2ECC71 // green
	ColorModified = 0xF39C12 // orange
	ColorDeleted  = 0xE74C3C // red
	ColorSummary  = 0x3498DB // blue
	ColorAlert    = 0xC0392B // dark red
)

const (
	// MaxFolderFieldCount caps the per-folder rows rendered in a summary embed.
	MaxFolderFieldCount = 10
	// MaxFieldValueLength is Discord's per-field value limit.
	MaxFieldValueLength = 1024
)
