package types

// ProvisioningConfig is the feature bundle resolved for one grade band and
// school type. Pure data; resolved by a deterministic table merge.
type ProvisioningConfig struct {
	GradeBand           string `json:"grade_band" yaml:"grade_band"`
	InterfaceComplexity string `json:"interface_complexity" yaml:"interface_complexity"`
	ShowLeaderboard     bool   `json:"show_leaderboard" yaml:"show_leaderboard"`
	EnableChat          bool   `json:"enable_chat" yaml:"enable_chat"`
	EnableVideo         bool   `json:"enable_video" yaml:"enable_video"`
	MaxSessionMinutes   int    `json:"max_session_minutes" yaml:"max_session_minutes"`
	ReadAloudDefault    bool   `json:"read_aloud_default" yaml:"read_aloud_default"`
	ParentDigest        bool   `json:"parent_digest" yaml:"parent_digest"`
}
