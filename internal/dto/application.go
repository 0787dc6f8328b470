package dto

type SubmitApplicationRequest struct {
	FirstName   string `json:"ad" form:"ad"`
	LastName    string `json:"soyad" form:"soyad"`
	Phone       string `json:"telefon" form:"telefon"`
	Email       string `json:"eposta" form:"eposta"`
	BirthDate   string `json:"dogum_tarihi" form:"dogum_tarihi"`
	Gender      string `json:"cinsiyet" form:"cinsiyet"`
	Address     string `json:"adres" form:"adres"`
	CourseLevel string `json:"kur_seviyesi" form:"kur_seviyesi"`
}

type ApplicationResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"ad"`
	LastName    string `json:"soyad"`
	Phone       string `json:"telefon"`
	Email       string `json:"eposta"`
	BirthDate   string `json:"dogum_tarihi,omitempty"`
	Gender      string `json:"cinsiyet,omitempty"`
	Address     string `json:"adres,omitempty"`
	CourseLevel string `json:"kur_seviyesi"`
	DekontPath  string `json:"dekont_path,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type ApplicationDetailResponse struct {
	Application ApplicationResponse      `json:"application"`
	Analyses    []DekontAnalysisResponse `json:"analyses"`
}
