package form

const (
	msgCredentials = "Email or password is incorrect."
	msgLockedLogin = "This account has been locked."
	msgOldPassword = "Old password is incorrect."
)

// SignUpForm collects the registration fields. Password values are
// validated from the raw submission and never stored on the form, so
// they cannot leak through a capsule.
type SignUpForm struct {
	Name             Field
	Email            Field
	Password         Field
	RepeatedPassword Field
}

func NewSignUpForm() *SignUpForm {
	return &SignUpForm{
		Name:             Field{Label: "Full name"},
		Email:            Field{Label: "Email"},
		Password:         Field{Label: "Password"},
		RepeatedPassword: Field{Label: "Repeat password"},
	}
}

func (f *SignUpForm) Validate(password, repeated string, emailTaken func(string) bool) bool {
	if checkRequired(&f.Name) {
		checkMaxLen(&f.Name, 255)
	}
	checkEmail(&f.Email, emailTaken)
	checkPassword(&f.Password, password)
	if repeated == "" {
		f.RepeatedPassword.Fail(msgRequired)
	} else if password != repeated {
		f.RepeatedPassword.Fail(msgPasswordDiff)
	}
	return !f.Name.Invalid() && !f.Email.Invalid() &&
		!f.Password.Invalid() && !f.RepeatedPassword.Invalid()
}

func (f *SignUpForm) Redact() Payload {
	return Payload{Fields: map[string]WireField{
		"name":              f.Name.wire(),
		"email":             f.Email.wire(),
		"password":          {Errors: f.Password.Errors},
		"repeated_password": {Errors: f.RepeatedPassword.Errors},
	}}
}

func (f *SignUpForm) Hydrate(p Payload) {
	f.Name.hydrate(p.Fields["name"], true)
	f.Email.hydrate(p.Fields["email"], true)
	f.Password.hydrate(p.Fields["password"], false)
	f.RepeatedPassword.hydrate(p.Fields["repeated_password"], false)
}

// SignInForm reports credential failures at form level so the response
// never confirms which half of the pair was wrong.
type SignInForm struct {
	Email    Field
	Password Field
	Errors   []string
}

func NewSignInForm() *SignInForm {
	return &SignInForm{
		Email:    Field{Label: "Email"},
		Password: Field{Label: "Password"},
	}
}

func (f *SignInForm) Validate(password string) bool {
	checkRequired(&f.Email)
	if password == "" {
		f.Password.Fail(msgRequired)
	}
	return !f.Email.Invalid() && !f.Password.Invalid()
}

func (f *SignInForm) FailCredentials() {
	f.Errors = append(f.Errors, msgCredentials)
}

func (f *SignInForm) FailLocked() {
	f.Errors = append(f.Errors, msgLockedLogin)
}

func (f *SignInForm) Redact() Payload {
	return Payload{
		Fields: map[string]WireField{
			"email":    f.Email.wire(),
			"password": {Errors: f.Password.Errors},
		},
		Errors: f.Errors,
	}
}

func (f *SignInForm) Hydrate(p Payload) {
	f.Email.hydrate(p.Fields["email"], true)
	f.Password.hydrate(p.Fields["password"], false)
	f.Errors = append(f.Errors, p.Errors...)
}

// PasswordForm changes the password of the signed-in user.
type PasswordForm struct {
	OldPassword         Field
	NewPassword         Field
	RepeatedNewPassword Field
}

func NewPasswordForm() *PasswordForm {
	return &PasswordForm{
		OldPassword:         Field{Label: "Current password"},
		NewPassword:         Field{Label: "New password"},
		RepeatedNewPassword: Field{Label: "Repeat new password"},
	}
}

func (f *PasswordForm) Validate(old, next, repeated string, oldMatches func(string) bool) bool {
	if old == "" {
		f.OldPassword.Fail(msgRequired)
	} else if oldMatches != nil && !oldMatches(old) {
		f.OldPassword.Fail(msgOldPassword)
	}
	checkPassword(&f.NewPassword, next)
	if repeated == "" {
		f.RepeatedNewPassword.Fail(msgRequired)
	} else if next != repeated {
		f.RepeatedNewPassword.Fail(msgPasswordDiff)
	}
	return !f.OldPassword.Invalid() && !f.NewPassword.Invalid() &&
		!f.RepeatedNewPassword.Invalid()
}

func (f *PasswordForm) Redact() Payload {
	return Payload{Fields: map[string]WireField{
		"old_password":          {Errors: f.OldPassword.Errors},
		"new_password":          {Errors: f.NewPassword.Errors},
		"repeated_new_password": {Errors: f.RepeatedNewPassword.Errors},
	}}
}

func (f *PasswordForm) Hydrate(p Payload) {
	f.OldPassword.hydrate(p.Fields["old_password"], false)
	f.NewPassword.hydrate(p.Fields["new_password"], false)
	f.RepeatedNewPassword.hydrate(p.Fields["repeated_new_password"], false)
}

// ProfileForm edits the signed-in user's display data. The account
// code is immutable and never part of the submission.
type ProfileForm struct {
	Name  Field
	Email Field
}

func NewProfileForm() *ProfileForm {
	return &ProfileForm{
		Name:  Field{Label: "Full name"},
		Email: Field{Label: "Email"},
	}
}

// Validate treats the user's own current address as free: the caller's
// taken predicate must exclude the user themselves.
func (f *ProfileForm) Validate(emailTaken func(string) bool) bool {
	if checkRequired(&f.Name) {
		checkMaxLen(&f.Name, 255)
	}
	checkEmail(&f.Email, emailTaken)
	return !f.Name.Invalid() && !f.Email.Invalid()
}

func (f *ProfileForm) Redact() Payload {
	return Payload{Fields: map[string]WireField{
		"name":  f.Name.wire(),
		"email": f.Email.wire(),
	}}
}

func (f *ProfileForm) Hydrate(p Payload) {
	f.Name.hydrate(p.Fields["name"], true)
	f.Email.hydrate(p.Fields["email"], true)
}
