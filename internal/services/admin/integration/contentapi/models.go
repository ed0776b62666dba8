package contentapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Int decodes integers the API sometimes sends as quoted strings.
type Int int64

// UnmarshalJSON accepts 7, "7", null and "".
func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*i = 0
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("decode integer %q: %w", data, err)
	}
	*i = Int(v)
	return nil
}

// Meta holds the fields the server assigns to every record.
type Meta struct {
	ID        Int    `json:"id"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// RecordID returns the server-assigned id.
func (m Meta) RecordID() int64 {
	return int64(m.ID)
}

// Service is one offered service.
type Service struct {
	Meta
	NameEN string `json:"name_en"`
	NameAR string `json:"name_ar"`
	DescEN string `json:"desc_en"`
	DescAR string `json:"desc_ar"`
	Img    string `json:"img,omitempty"`
}

// AboutUs is the company profile singleton.
type AboutUs struct {
	Meta
	MissionEN string `json:"mission_en"`
	MissionAR string `json:"mission_ar"`
	VisionEN  string `json:"vision_en"`
	VisionAR  string `json:"vision_ar"`
	DescEN    string `json:"desc_en"`
	DescAR    string `json:"desc_ar"`
	Img       string `json:"img,omitempty"`
}

// WhyChooseUs is one selling point shown with an icon.
type WhyChooseUs struct {
	Meta
	NameEN string `json:"name_en"`
	NameAR string `json:"name_ar"`
	DescEN string `json:"desc_en"`
	DescAR string `json:"desc_ar"`
	Icon   string `json:"icon"`
}

// ClientLogo is a customer logo entry.
type ClientLogo struct {
	Meta
	NameEN string `json:"name_en"`
	NameAR string `json:"name_ar"`
	Img    string `json:"img,omitempty"`
}

// Category groups projects.
type Category struct {
	Meta
	NameEN string `json:"name_en"`
	NameAR string `json:"name_ar"`
	DescEN string `json:"desc_en"`
	DescAR string `json:"desc_ar"`
}

// Project is a portfolio entry with a cover, a gallery and an optional video
// link.
type Project struct {
	Meta
	CategoryID Int      `json:"category_id"`
	TitleEN    string   `json:"title_en"`
	TitleAR    string   `json:"title_ar"`
	Cover      string   `json:"cover,omitempty"`
	Images     []string `json:"images,omitempty"`
	Video      string   `json:"video,omitempty"`
}

// Review is a customer testimonial. It is not bilingual.
type Review struct {
	Meta
	Name    string `json:"name"`
	Text    string `json:"text"`
	NumStar Int    `json:"num_star"`
}

// ContactMessage is a visitor enquiry submitted from the public site.
type ContactMessage struct {
	Meta
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TypeUnit string `json:"type_unit"`
	Location string `json:"location"`
	Msg      string `json:"msg"`
}

// News is a bilingual article.
type News struct {
	Meta
	TitleEN   string `json:"title_en"`
	TitleAR   string `json:"title_ar"`
	BodyEN    string `json:"body_en"`
	BodyAR    string `json:"body_ar"`
	KeywordEN string `json:"keyword_en"`
	KeywordAR string `json:"keyword_ar"`
	ContentEN string `json:"content_en"`
	ContentAR string `json:"content_ar"`
	Image     string `json:"image,omitempty"`
}
