// Package storage define los errores sentinela que comparten todos los
// repositorios (postgres y memoria). Los services y handlers los mapean a
// códigos HTTP sin conocer el motor de persistencia.
package storage

import "errors"

var (
	// ErrNotFound: la fila pedida no existe.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrDuplicate: violación de unicidad.
	ErrDuplicate = errors.New("registro duplicado")

	// ErrRestricted: no se puede borrar porque hay dependientes (FK RESTRICT).
	ErrRestricted = errors.New("existen registros asociados")

	// ErrForeignKey: la referencia apunta a una fila que no existe.
	ErrForeignKey = errors.New("referencia inexistente")
)
