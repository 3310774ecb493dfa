package inbound

type AddSchoolRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Contact string `json:"contact"`
	Image   string `json:"image"`
	EmailID string `json:"email"`
}

type DeleteSchoolRequest struct {
	ID int64 `json:"id"`
}

type SchoolData struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Contact  string `json:"contact"`
	Image    string `json:"image,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	EmailID  string `json:"email_id"`
}

type SchoolListResponse struct {
	Schools []SchoolData
}

func (r SchoolListResponse) Payload() map[string]any {
	return map[string]any{"schools": r.Schools}
}

type AddSchoolResponse struct {
	ID int64
}

func (AddSchoolResponse) Message() string {
	return "School added successfully"
}

func (r AddSchoolResponse) Payload() map[string]any {
	return map[string]any{"id": r.ID}
}

type DeleteSchoolResponse struct{}

func (DeleteSchoolResponse) Message() string {
	return "School deleted successfully"
}

type SchoolImageResponse struct {
	Image string
}

func (r SchoolImageResponse) Payload() map[string]any {
	return map[string]any{"image": r.Image}
}
