package pages

import (
	"net/http"

	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type loginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required"`
	Password        string `form:"password" validate:"required"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

func (p *Pages) loginForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "login", view{Title: "Log in"})
}

func (p *Pages) login(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	v := view{Title: "Log in", Form: formValues(r, "email")}

	if err := request.Validate(&form); err != nil {
		p.failForm(w, r, "login", v, err)
		return
	}

	u, err := p.Users.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		p.failForm(w, r, "login", v, err)
		return
	}

	p.startSession(w, r, u)
}

func (p *Pages) registerForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "register", view{Title: "Register"})
}

func (p *Pages) register(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
	}
	v := view{Title: "Register", Form: formValues(r, "username", "email")}

	if err := request.Validate(&form); err != nil {
		p.failForm(w, r, "register", v, err)
		return
	}

	u, err := p.Users.Register(r.Context(), user.RegisterParams{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		p.failForm(w, r, "register", v, err)
		return
	}

	p.startSession(w, r, u)
}

func (p *Pages) startSession(w http.ResponseWriter, r *http.Request, u *user.User) {
	token, err := p.Sessions.Issue(u)
	if err != nil {
		p.serverError(w, r, err)
		return
	}

	p.Sessions.SetCookie(w, token)
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

func (p *Pages) logout(w http.ResponseWriter, r *http.Request) {
	p.Sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// failForm re-renders page with the messages err carries.
func (p *Pages) failForm(w http.ResponseWriter, r *http.Request, page string, v view, err error) {
	status, errs, ok := formErrors(err)
	if !ok {
		p.serverError(w, r, err)
		return
	}

	v.Errors = errs
	p.render(w, r, status, page, v)
}
