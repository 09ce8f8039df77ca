package soulnest

import "encoding/json"

// User is a soulnest account. Password is only sent on registration and
// is never returned by the server.
type User struct {
	ID          int64  `json:"id,omitempty"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Status      int    `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	LastLoginAt string `json:"lastLoginAt,omitempty"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}

// Risk classification values reported by the server detectors.
const (
	RiskNone    = "NONE"
	RiskLow     = "LOW"
	RiskMedium  = "MEDIUM"
	RiskHigh    = "HIGH"
	RiskCrisis  = "CRISIS"
	RiskUnknown = "UNKNOWN"
)

// RiskDetection is the detector verdict for one message.
type RiskDetection struct {
	ID           int64    `json:"id,omitempty"`
	MessageID    int64    `json:"messageId,omitempty"`
	RiskLevel    string   `json:"riskLevel,omitempty"`
	Polarity     string   `json:"polarity,omitempty"`
	Intent       string   `json:"intent,omitempty"`
	Target       string   `json:"target,omitempty"`
	Confidence   float64  `json:"confidence,omitempty"`
	Evidence     []string `json:"evidence,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	DetectedAt   string   `json:"detectedAt,omitempty"`
	Processed    bool     `json:"processed,omitempty"`
	ProcessNotes *string  `json:"processNotes,omitempty"`
}

// RiskMessage is a conversation message shown to administrators.
type RiskMessage struct {
	ID          int64   `json:"id,omitempty"`
	Role        string  `json:"role,omitempty"`
	MessageType string  `json:"messageType,omitempty"`
	Text        *string `json:"text,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// RiskConversation is a conversation with its detector results.
type RiskConversation struct {
	ConversationID      int64           `json:"conversationId"`
	UserID              int64           `json:"userId"`
	Title               *string         `json:"title,omitempty"`
	CreatedAt           string          `json:"createdAt,omitempty"`
	AggregatedRiskLevel string          `json:"aggregatedRiskLevel,omitempty"`
	Detections          []RiskDetection `json:"detections"`
	Messages            []RiskMessage   `json:"messages"`
}

// ProcessRiskDetection marks a detection as handled.
type ProcessRiskDetection struct {
	Processed    bool    `json:"processed"`
	ProcessNotes *string `json:"processNotes,omitempty"`
}

// Profile is a user profile as returned by the server.
type Profile struct {
	ID                     int64    `json:"id,omitempty"`
	UserID                 int64    `json:"userId"`
	Interests              []string `json:"interests,omitempty"`
	PersonalityTraits      []string `json:"personalityTraits,omitempty"`
	InteractionPreferences []string `json:"interactionPreferences,omitempty"`
	EmotionalTendency      []string `json:"emotionalTendency,omitempty"`
	LearningRecords        []string `json:"learningRecords,omitempty"`
	CreatedAt              *string  `json:"createdAt,omitempty"`
	UpdatedAt              *string  `json:"updatedAt,omitempty"`
}

// ProfileSave is the input of Profiles.Save. Nil fields are left out.
type ProfileSave struct {
	UserID                 int64
	Interests              []string
	PersonalityTraits      []string
	InteractionPreferences []string
	EmotionalTendency      []string
	LearningRecords        []string
}

// Diary is a user diary entry.
type Diary struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	Title           string `json:"title,omitempty"`
	Content         string `json:"content"`
	MoodDescription string `json:"moodDescription,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// DiaryInput creates or updates a diary entry.
type DiaryInput struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Media is an attachment of a community post.
type Media struct {
	MediaID       int64          `json:"mediaId,omitempty"`
	MediaType     string         `json:"mediaType,omitempty"`
	MediaURL      string         `json:"mediaUrl,omitempty"`
	Base64Content string         `json:"base64Content,omitempty"`
	ExtraMetadata map[string]any `json:"extraMetadata,omitempty"`
}

// PostInput creates or updates a community post.
type PostInput struct {
	UserID        int64          `json:"userId"`
	Title         string         `json:"title,omitempty"`
	Content       string         `json:"content,omitempty"`
	ExtraMetadata map[string]any `json:"extraMetadata,omitempty"`
	Status        *int           `json:"status,omitempty"`
	MediaList     []Media        `json:"mediaList,omitempty"`
}

// Post is a community post.
type Post struct {
	PostID        int64          `json:"postId,omitempty"`
	UserID        int64          `json:"userId,omitempty"`
	Nickname      string         `json:"nickname,omitempty"`
	Title         string         `json:"title,omitempty"`
	Content       string         `json:"content,omitempty"`
	ExtraMetadata map[string]any `json:"extraMetadata,omitempty"`
	LikesCount    int            `json:"likesCount,omitempty"`
	CommentsCount int            `json:"commentsCount,omitempty"`
	Status        int            `json:"status,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
	MediaList     []Media        `json:"mediaList,omitempty"`
}

// PostFilter narrows Community.ListPosts. Nil fields are not sent.
type PostFilter struct {
	Status *int
	UserID *int64
}

// Comment is a comment on a community post.
type Comment struct {
	CommentID  int64  `json:"commentId,omitempty"`
	PostID     int64  `json:"postId,omitempty"`
	UserID     int64  `json:"userId,omitempty"`
	Content    string `json:"content,omitempty"`
	LikesCount int    `json:"likesCount,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// SessionCreate opens an LLM session.
type SessionCreate struct {
	UserID     int64          `json:"userId"`
	DialogueID *int64         `json:"dialogueId,omitempty"`
	Location   map[string]any `json:"location,omitempty"`
}

// Session is a newly opened LLM session.
type Session struct {
	SessionID      string         `json:"sessionId"`
	Prompt         *string        `json:"prompt,omitempty"`
	ClientIP       *string        `json:"clientIp,omitempty"`
	Location       map[string]any `json:"location,omitempty"`
	UserProfile    *Profile       `json:"userProfile,omitempty"`
	TimeoutSeconds int            `json:"timeoutSeconds,omitempty"`
	DialogueID     *int64         `json:"dialogueId,omitempty"`
}

// SessionStatus describes an open LLM session.
type SessionStatus struct {
	SessionID      string         `json:"sessionId"`
	UserID         *int64         `json:"userId,omitempty"`
	DialogueID     *int64         `json:"dialogueId,omitempty"`
	LastActive     *string        `json:"lastActive,omitempty"`
	Location       map[string]any `json:"location,omitempty"`
	TimeoutSeconds int            `json:"timeoutSeconds,omitempty"`
}

// Message is a user message sent to an LLM session.
type Message struct {
	Text    string  `json:"text"`
	Emotion *string `json:"emotion,omitempty"`
}

// Reply is the assistant answer to a Message.
type Reply struct {
	SessionID     string           `json:"sessionId"`
	Reply         *string          `json:"reply,omitempty"`
	ToolCalls     []map[string]any `json:"toolCalls,omitempty"`
	SessionClosed bool             `json:"sessionClosed,omitempty"`
	DialogueID    *int64           `json:"dialogueId,omitempty"`
	Title         *string          `json:"title,omitempty"`
}

// SessionClose is the result of closing an LLM session.
type SessionClose struct {
	SessionID string `json:"sessionId"`
	Saved     bool   `json:"saved"`
	Message   string `json:"message,omitempty"`
}

// Health is the LLM service health report.
type Health struct {
	Status string `json:"status"`
}

// HealthOK is the status of a healthy LLM service.
const HealthOK = "ok"

// Conversation is a stored dialogue.
type Conversation struct {
	ID        int64  `json:"id,omitempty"`
	UserID    int64  `json:"userId,omitempty"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ConversationMessage is one message of a stored dialogue.
type ConversationMessage struct {
	ID             int64  `json:"id,omitempty"`
	ConversationID int64  `json:"conversationId,omitempty"`
	SenderRole     string `json:"senderRole,omitempty"`
	SenderUserID   *int64 `json:"senderUserId,omitempty"`
	MessageType    string `json:"messageType,omitempty"`
	Content        string `json:"content,omitempty"`
	TokenCount     int    `json:"tokenCount,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// Scale is a depression rating scale. Questions and SeverityRanges are
// JSON documents kept as the server sends them.
type Scale struct {
	ScaleID          int64  `json:"scaleId"`
	ScaleName        string `json:"scaleName"`
	ScaleDescription string `json:"scaleDescription"`
	Questions        string `json:"questions"`
	SeverityRanges   string `json:"severityRanges"`
}

// Assessment is a completed depression assessment.
type Assessment struct {
	AssessmentID int64           `json:"assessmentId,omitempty"`
	UserID       int64           `json:"userId,omitempty"`
	ScaleID      int64           `json:"scaleId,omitempty"`
	TotalScore   int             `json:"totalScore"`
	Answers      json.RawMessage `json:"answers,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
}

// SignatureCreate requests a signed application token.
type SignatureCreate struct {
	AppID     string `json:"appId"`
	AppKey    string `json:"appKey"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

// Signature is a signed application token.
type Signature struct {
	Token     string `json:"token"`
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt"`
}

// SignatureVerify checks a signed application token.
type SignatureVerify struct {
	Token  string `json:"token"`
	AppKey string `json:"appKey"`
}

// SignatureResult is the outcome of a token verification.
type SignatureResult struct {
	Valid     bool   `json:"valid"`
	AppID     string `json:"appId,omitempty"`
	IssuedAt  string `json:"issuedAt,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// MusicTrack is a track of the relaxation library. List endpoints may omit
// FileData and CoverImage.
type MusicTrack struct {
	MusicID     int64    `json:"musicId,omitempty"`
	Title       string   `json:"title"`
	Artist      string   `json:"artist,omitempty"`
	Album       string   `json:"album,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	FileData    string   `json:"fileData,omitempty"`
	FileSize    int64    `json:"fileSize"`
	MimeType    string   `json:"mimeType,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Lyrics      string   `json:"lyrics,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MoodTags    []string `json:"moodTags,omitempty"`
	Status      *int     `json:"status,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// MusicInput creates or updates a track. FileData and CoverImage are
// base64 encoded; both are dropped by UpdateMetadata.
type MusicInput struct {
	Title       string   `json:"title,omitempty"`
	Artist      string   `json:"artist,omitempty"`
	Album       string   `json:"album,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	FileData    string   `json:"fileData,omitempty"`
	FileSize    int64    `json:"fileSize,omitempty"`
	MimeType    string   `json:"mimeType,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Lyrics      string   `json:"lyrics,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MoodTags    []string `json:"moodTags,omitempty"`
	Status      *int     `json:"status,omitempty"`
}

// Psychology knowledge content types used by favorites.
const (
	ContentArticle  = "ARTICLE"
	ContentQnA      = "QNA"
	ContentResource = "RESOURCE"
)

// Psychology resource types.
const (
	ResourceVideo = "VIDEO"
	ResourceAudio = "AUDIO"
	ResourcePDF   = "PDF"
	ResourceLink  = "LINK"
	ResourceTool  = "TOOL"
)

// PsychologyCategory is a node of the knowledge category tree.
type PsychologyCategory struct {
	CategoryID   int64  `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName"`
	ParentID     *int64 `json:"parentId,omitempty"`
	Description  string `json:"description,omitempty"`
	SortOrder    int    `json:"sortOrder,omitempty"`
	Status       *int   `json:"status,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// CategoryTreeNode is a category with its descendants.
type CategoryTreeNode struct {
	Category PsychologyCategory `json:"category"`
	Children []CategoryTreeNode `json:"children"`
}

// Large identifiers are sent either as numbers or as strings, so the
// knowledge models keep them as json.Number.

// Article is a psychology article. Tags is a JSON encoded string list.
type Article struct {
	ArticleID   json.Number `json:"articleId,omitempty"`
	CategoryID  int64       `json:"categoryId"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary,omitempty"`
	Content     string      `json:"content"`
	Author      string      `json:"author,omitempty"`
	Source      string      `json:"source,omitempty"`
	Tags        string      `json:"tags,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	ViewCount   int         `json:"viewCount,omitempty"`
	LikeCount   int         `json:"likeCount,omitempty"`
	IsFeatured  bool        `json:"isFeatured,omitempty"`
	IsPublished bool        `json:"isPublished,omitempty"`
	PublishDate string      `json:"publishDate,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

// QnA is an expert answered question.
type QnA struct {
	QnAID       json.Number `json:"qnaId,omitempty"`
	CategoryID  int64       `json:"categoryId"`
	Question    string      `json:"question"`
	Answer      string      `json:"answer"`
	ExpertName  string      `json:"expertName,omitempty"`
	ExpertTitle string      `json:"expertTitle,omitempty"`
	Tags        string      `json:"tags,omitempty"`
	ViewCount   int         `json:"viewCount,omitempty"`
	LikeCount   int         `json:"likeCount,omitempty"`
	IsVerified  bool        `json:"isVerified,omitempty"`
	Status      *int        `json:"status,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

// Resource is a video, audio, PDF, link or tool of the knowledge base.
type Resource struct {
	ResourceID   json.Number `json:"resourceId,omitempty"`
	CategoryID   int64       `json:"categoryId"`
	ResourceType string      `json:"resourceType"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	FileData     string      `json:"fileData,omitempty"`
	ExternalURL  string      `json:"externalUrl,omitempty"`
	FileSize     json.Number `json:"fileSize,omitempty"`
	MimeType     string      `json:"mimeType,omitempty"`
	Duration     int         `json:"duration,omitempty"`
	Thumbnail    string      `json:"thumbnail,omitempty"`
	Tags         string      `json:"tags,omitempty"`
	ViewCount    int         `json:"viewCount,omitempty"`
	LikeCount    int         `json:"likeCount,omitempty"`
	Status       *int        `json:"status,omitempty"`
	CreatedAt    string      `json:"createdAt,omitempty"`
	UpdatedAt    string      `json:"updatedAt,omitempty"`
}

// Favorite is a knowledge item saved by a user.
type Favorite struct {
	FavoriteID  json.Number `json:"favoriteId,omitempty"`
	UserID      json.Number `json:"userId"`
	ContentType string      `json:"contentType"`
	ContentID   json.Number `json:"contentId"`
	CreatedAt   string      `json:"createdAt,omitempty"`
}

// FavoriteState reports whether an item is in the user's favorites.
type FavoriteState struct {
	IsFavorited bool `json:"isFavorited"`
}
