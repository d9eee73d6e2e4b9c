package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type RecommendationID string

func NewRecommendationID(id string) RecommendationID { return RecommendationID(id) }
func (r RecommendationID) String() string            { return string(r) }
func (r RecommendationID) IsEmpty() bool             { return string(r) == "" }

// BucketURL is a storage object URL (signed or path-style)
type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }
