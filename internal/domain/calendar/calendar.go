// Package calendar concentra la política de "día local": qué zona horaria define
// el hoy, cómo se agrupa un instante en su fecha calendario y cómo se etiqueta.
//
// Toda agregación por día pasa por aquí; nunca se usa un módulo de timestamp
// (unix/86400), que falla en zonas con horario de verano y en cambios de mes.
package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata" // zonas embebidas: el contenedor puede no traer /usr/share/zoneinfo

	"golang.org/x/text/language"
)

// DayKeyLayout formato de la clave de un bucket diario.
const DayKeyLayout = "2006-01-02"

var supported = []language.Tag{language.Spanish, language.English, language.Portuguese}

var weekdayNames = [][7]string{
	{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"},
}

var matcher = language.NewMatcher(supported)

// Calendar fija zona horaria e idioma de etiquetas.
type Calendar struct {
	loc      *time.Location
	lang     language.Tag
	weekdays [7]string
}

// New construye el calendario. Un idioma no soportado cae al más cercano (por defecto español).
func New(loc *time.Location, lang language.Tag) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	_, idx, _ := matcher.Match(lang)
	return &Calendar{loc: loc, lang: supported[idx], weekdays: weekdayNames[idx]}
}

// Load construye el calendario desde nombres de configuración ("America/Bogota", "es").
func Load(timeZone, lang string) (*Calendar, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("calendar: zona horaria %q: %w", timeZone, err)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("calendar: idioma %q: %w", lang, err)
	}
	return New(loc, tag), nil
}

// Location zona horaria que define el día local.
func (c *Calendar) Location() *time.Location { return c.loc }

// Language idioma efectivo de las etiquetas.
func (c *Calendar) Language() language.Tag { return c.lang }

// StartOfDay medianoche local del día que contiene t.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// AddDays desplaza n días calendario desde el día de t y devuelve su medianoche local.
// Usa aritmética de fecha (no n*24h) para no desfasarse en transiciones de horario de verano.
func (c *Calendar) AddDays(t time.Time, n int) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, c.loc)
}

// DayKey fecha calendario local de t ("2006-01-02").
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(DayKeyLayout)
}

// DayLabel etiqueta corta localizada: día de la semana + día del mes ("lun 14").
func (c *Calendar) DayLabel(t time.Time) string {
	local := t.In(c.loc)
	return fmt.Sprintf("%s %d", c.weekdays[local.Weekday()], local.Day())
}
