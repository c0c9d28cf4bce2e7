package entity

import "time"

// User representa un usuario del marketplace. Es dueño de catálogos, categorías y productos;
// al eliminarlo se eliminan en cascada todos sus recursos.
type User struct {
	ID           int64
	Username     string // único, sensible a mayúsculas
	Email        string // único, sensible a mayúsculas
	PasswordHash string // bcrypt hash, nunca plano
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch campos opcionales de una actualización parcial de usuario.
// PasswordHash ya debe venir hasheado.
type UserPatch struct {
	Username     Field[string]
	Email        Field[string]
	PasswordHash Field[string]
}

// Apply mezcla en u los campos presentes en p.
func (u *User) Apply(p UserPatch) {
	p.Username.Apply(&u.Username)
	p.Email.Apply(&u.Email)
	p.PasswordHash.Apply(&u.PasswordHash)
}
