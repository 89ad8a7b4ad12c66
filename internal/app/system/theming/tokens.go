package theming

// Palette holds the base color tokens for one theme. Values are hex strings
// the mobile client feeds straight into its style factories.
type Palette struct {
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Card       string `json:"card"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	TextMuted  string `json:"text_muted"`
	Border     string `json:"border"`
	Danger     string `json:"danger"`
}

// StatusColors maps payment status classifications to display colors.
type StatusColors struct {
	Paid    string `json:"paid"`
	Credit  string `json:"credit"`
	Pending string `json:"pending"`
	Overdue string `json:"overdue"`
}

// RoleColors maps club roles to badge colors.
type RoleColors struct {
	Manager   string `json:"manager"`
	Treasurer string `json:"treasurer"`
	Member    string `json:"member"`
}

// TokenSet bundles every token table for one active theme.
type TokenSet struct {
	Theme  ActiveTheme  `json:"theme"`
	Colors Palette      `json:"colors"`
	Status StatusColors `json:"status"`
	Roles  RoleColors   `json:"roles"`
}

var lightTokens = TokenSet{
	Theme: ThemeLight,
	Colors: Palette{
		Background: "#F7F7F8",
		Surface:    "#FFFFFF",
		Card:       "#FFFFFF",
		Primary:    "#2563EB",
		Accent:     "#7C3AED",
		Text:       "#111827",
		TextMuted:  "#6B7280",
		Border:     "#E5E7EB",
		Danger:     "#DC2626",
	},
	Status: StatusColors{
		Paid:    "#16A34A",
		Credit:  "#0D9488",
		Pending: "#D97706",
		Overdue: "#DC2626",
	},
	Roles: RoleColors{
		Manager:   "#7C3AED",
		Treasurer: "#2563EB",
		Member:    "#6B7280",
	},
}

var darkTokens = TokenSet{
	Theme: ThemeDark,
	Colors: Palette{
		Background: "#0F1115",
		Surface:    "#171A21",
		Card:       "#1F232C",
		Primary:    "#3B82F6",
		Accent:     "#A78BFA",
		Text:       "#F3F4F6",
		TextMuted:  "#9CA3AF",
		Border:     "#2D333F",
		Danger:     "#F87171",
	},
	Status: StatusColors{
		Paid:    "#4ADE80",
		Credit:  "#2DD4BF",
		Pending: "#FBBF24",
		Overdue: "#F87171",
	},
	Roles: RoleColors{
		Manager:   "#A78BFA",
		Treasurer: "#60A5FA",
		Member:    "#9CA3AF",
	},
}

var darkBlueTokens = TokenSet{
	Theme: ThemeDarkBlue,
	Colors: Palette{
		Background: "#0B1B33",
		Surface:    "#122647",
		Card:       "#18305A",
		Primary:    "#60A5FA",
		Accent:     "#93C5FD",
		Text:       "#E8F0FE",
		TextMuted:  "#94A9C9",
		Border:     "#23406E",
		Danger:     "#F87171",
	},
	Status: StatusColors{
		Paid:    "#4ADE80",
		Credit:  "#2DD4BF",
		Pending: "#FBBF24",
		Overdue: "#F87171",
	},
	Roles: RoleColors{
		Manager:   "#93C5FD",
		Treasurer: "#60A5FA",
		Member:    "#94A9C9",
	},
}

// Tokens returns the token tables for the given active theme.
func Tokens(t ActiveTheme) TokenSet {
	switch t {
	case ThemeDark:
		return darkTokens
	case ThemeDarkBlue:
		return darkBlueTokens
	default:
		return lightTokens
	}
}
