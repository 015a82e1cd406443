package model

// お問い合わせフォーム
type ContactMessage struct {
	Name     string `json:"name"`
	ReplyTo  string `json:"_replyto"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ニュースレター登録
type NewsletterSignup struct {
	Email string `json:"email"`
}
