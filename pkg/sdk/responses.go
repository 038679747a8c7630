package sdk

// Response envelopes for the platform's JSON payloads. These stay
// unexported; exported methods unwrap them into the typed values callers
// work with.

type tokenRes struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	AccessType   string `json:"access_type,omitempty"`
}

type createThingsRes struct {
	Things []Thing `json:"things"`
}

type createChannelsRes struct {
	Channels []Channel `json:"channels"`
}

type pageRes struct {
	Total  uint64 `json:"total"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type usersPageRes struct {
	pageRes
	Users []User `json:"users,omitempty"`
}

type thingsPageRes struct {
	pageRes
	Things []Thing `json:"things,omitempty"`
}

type channelsPageRes struct {
	pageRes
	Channels []Channel `json:"channels,omitempty"`
}

type groupsPageRes struct {
	pageRes
	Groups []Group `json:"groups,omitempty"`
}

type certsPageRes struct {
	pageRes
	Certs []Cert `json:"certs,omitempty"`
}

type bootstrapPageRes struct {
	pageRes
	Configs []BootstrapConfig `json:"configs,omitempty"`
}

type messagesPageRes struct {
	pageRes
	Messages []Message `json:"messages,omitempty"`
}

type journalPageRes struct {
	pageRes
	Journals []Journal `json:"journals,omitempty"`
}
