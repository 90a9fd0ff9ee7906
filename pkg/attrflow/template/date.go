package template

import (
	"strconv"
	"strings"
	"time"
)

// FormatDate renders t with a PHP date() style layout, e.g. "d.m.Y" or
// "Y-m-d H:i". A backslash makes the next character literal; characters
// that are not format letters are copied as-is.
func FormatDate(t time.Time, layout string) string {
	var b strings.Builder
	b.Grow(len(layout) * 2)

	escaped := false
	for _, c := range layout {
		if escaped {
			b.WriteRune(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		writeDateLetter(&b, t, c)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

func writeDateLetter(b *strings.Builder, t time.Time, c rune) {
	switch c {
	// Day
	case 'd':
		b.WriteString(pad(t.Day(), 2))
	case 'D':
		b.WriteString(t.Format("Mon"))
	case 'j':
		b.WriteString(strconv.Itoa(t.Day()))
	case 'l':
		b.WriteString(t.Weekday().String())
	case 'N':
		b.WriteString(strconv.Itoa(isoWeekday(t)))
	case 'S':
		b.WriteString(ordinalSuffix(t.Day()))
	case 'w':
		b.WriteString(strconv.Itoa(int(t.Weekday())))
	case 'z':
		b.WriteString(strconv.Itoa(t.YearDay() - 1))

	// Week
	case 'W':
		_, week := t.ISOWeek()
		b.WriteString(pad(week, 2))

	// Month
	case 'F':
		b.WriteString(t.Month().String())
	case 'm':
		b.WriteString(pad(int(t.Month()), 2))
	case 'M':
		b.WriteString(t.Format("Jan"))
	case 'n':
		b.WriteString(strconv.Itoa(int(t.Month())))
	case 't':
		b.WriteString(strconv.Itoa(daysInMonth(t)))

	// Year
	case 'L':
		if isLeap(t.Year()) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case 'o':
		year, _ := t.ISOWeek()
		b.WriteString(strconv.Itoa(year))
	case 'Y':
		b.WriteString(year4(t.Year()))
	case 'y':
		b.WriteString(pad(t.Year()%100, 2))

	// Time
	case 'a':
		b.WriteString(t.Format("pm"))
	case 'A':
		b.WriteString(t.Format("PM"))
	case 'B':
		b.WriteString(pad(swatchBeat(t), 3))
	case 'g':
		b.WriteString(strconv.Itoa(hour12(t)))
	case 'G':
		b.WriteString(strconv.Itoa(t.Hour()))
	case 'h':
		b.WriteString(pad(hour12(t), 2))
	case 'H':
		b.WriteString(pad(t.Hour(), 2))
	case 'i':
		b.WriteString(pad(t.Minute(), 2))
	case 's':
		b.WriteString(pad(t.Second(), 2))
	case 'u':
		b.WriteString(pad(t.Nanosecond()/1e3, 6))
	case 'v':
		b.WriteString(pad(t.Nanosecond()/1e6, 3))

	// Timezone
	case 'e':
		b.WriteString(t.Location().String())
	case 'I':
		if t.IsDST() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case 'O':
		b.WriteString(t.Format("-0700"))
	case 'P':
		b.WriteString(t.Format("-07:00"))
	case 'p':
		if _, off := t.Zone(); off == 0 {
			b.WriteByte('Z')
		} else {
			b.WriteString(t.Format("-07:00"))
		}
	case 'T':
		b.WriteString(t.Format("MST"))
	case 'Z':
		_, off := t.Zone()
		b.WriteString(strconv.Itoa(off))

	// Full date/time
	case 'c':
		b.WriteString(t.Format("2006-01-02T15:04:05-07:00"))
	case 'r':
		b.WriteString(t.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	case 'U':
		b.WriteString(strconv.FormatInt(t.Unix(), 10))

	default:
		b.WriteRune(c)
	}
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// year4 pads the year to at least four digits, keeping the sign.
func year4(year int) string {
	if year < 0 {
		return "-" + pad(-year, 4)
	}
	return pad(year, 4)
}

func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

// swatchBeat returns Swatch Internet Time, which is based on UTC+1.
func swatchBeat(t time.Time) int {
	u := t.UTC()
	secs := (u.Hour()*3600 + u.Minute()*60 + u.Second() + 3600) % 86400
	return secs * 10 / 864
}
