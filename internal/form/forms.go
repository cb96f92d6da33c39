package form

import "portfolio/internal/model"

// ContactForm is the public contact form.
type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"required,numeric"`
	Message string `form:"message" validate:"required"`
}

// RegisterForm creates the admin account.
type RegisterForm struct {
	Name     string `form:"name" validate:"required,max=30"`
	Email    string `form:"email" validate:"required,email,max=75"`
	Password string `form:"password" validate:"required" trim:"false"`
}

// LoginForm authenticates the admin.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required" trim:"false"`
}

// ProjectForm creates or edits a project post.
type ProjectForm struct {
	Title      string `form:"project_title" validate:"required,max=75"`
	GithubURL  string `form:"project_github_url" validate:"required,url,max=250"`
	WebsiteURL string `form:"project_website_url" validate:"omitempty,url,max=250"`
	ImageURL   string `form:"project_image_url" validate:"required,url,max=250"`
	Summary    string `form:"project_summary" validate:"required"`
}

// ProjectFormFrom pre-populates the form with a stored project.
func ProjectFormFrom(p *model.ProjectPost) ProjectForm {
	return ProjectForm{
		Title:      p.ProjectName,
		GithubURL:  p.GithubURL,
		WebsiteURL: p.WebsiteURL,
		ImageURL:   p.ImageURL,
		Summary:    p.Summary,
	}
}

// Project converts the submitted values into a project record.
func (f ProjectForm) Project() *model.ProjectPost {
	return &model.ProjectPost{
		ProjectName: f.Title,
		Summary:     f.Summary,
		GithubURL:   f.GithubURL,
		WebsiteURL:  f.WebsiteURL,
		ImageURL:    f.ImageURL,
	}
}

// ProfileForm edits the welcome profile.
type ProfileForm struct {
	ImageURL string `form:"profile_img_url" validate:"required,url,max=200"`
	Title    string `form:"welcome_title" validate:"max=30"`
	Intro    string `form:"intro_of_admin" validate:"required"`
}

// ProfileFormFrom pre-populates the form with the stored profile.
func ProfileFormFrom(p *model.Profile) ProfileForm {
	return ProfileForm{
		ImageURL: p.ProfileImageURL,
		Title:    p.Title,
		Intro:    p.IntroText,
	}
}

// Profile converts the submitted values into a profile record.
func (f ProfileForm) Profile() *model.Profile {
	return &model.Profile{
		ProfileImageURL: f.ImageURL,
		Title:           f.Title,
		IntroText:       f.Intro,
	}
}
