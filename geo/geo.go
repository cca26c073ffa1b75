// Package geo provides geospatial helpers for flight-track data, such as
// Haversine track distance and solar zenith angle.
package geo

import (
	"math"
	"time"

	"github.com/atmodata/atmodata/errs"
)

// EarthRadius is the approximate mean radius of the earth in km.
const EarthRadius = 6372.8

// degree-argument trigonometry
func cosd(x float64) float64 { return math.Cos(x * math.Pi / 180) }
func sind(x float64) float64 { return math.Sin(x * math.Pi / 180) }
func acosd(x float64) float64 {
	return math.Acos(x) * 180 / math.Pi
}

// HaversineDistance returns the great-circle distance in km accumulated
// along a track of lat/lon coordinates given in degrees. Tracks shorter
// than two points have zero length.
func HaversineDistance(lat, lon []float64) (float64, error) {
	if len(lat) != len(lon) {
		return 0, errs.ErrLengthMismatch
	}

	dist := 0.0
	for j := 1; j < len(lat); j++ {
		lat0, lat1 := lat[j-1], lat[j]
		lon0, lon1 := lon[j-1], lon[j]

		dLat := (lat1 - lat0) * math.Pi / 180
		dLon := (lon1 - lon0) * math.Pi / 180
		rLat0 := lat0 * math.Pi / 180
		rLat1 := lat1 * math.Pi / 180

		sinLat := math.Sin(dLat / 2)
		sinLon := math.Sin(dLon / 2)
		a := sinLat*sinLat + math.Cos(rLat0)*math.Cos(rLat1)*sinLon*sinLon

		dist += EarthRadius * 2 * math.Asin(math.Sqrt(a))
	}

	return dist, nil
}

// SolarZenithAngle returns the solar zenith angle in degrees for the given
// UTC instant and position. Latitude and longitude are in degrees, east and
// north positive. Sun declination follows DIN 5034-2, the hour angle uses
// the equation of time.
func SolarZenithAngle(utc time.Time, latitude, longitude float64) float64 {
	utc = utc.UTC()

	dayOfYear := float64(utc.YearDay())
	leapYearFactor := [4]float64{-0.375, 0.375, -0.125, 0.125}[utc.Year()%4]
	utcMin := float64(utc.Hour())*60 + float64(utc.Minute()) + float64(utc.Second())/60
	j := 360.0 / 365.0 * (dayOfYear + leapYearFactor + utcMin/1440)

	averageLocaltime := utcMin + 4*longitude
	trueSolarTime := averageLocaltime +
		0.0066 +
		7.3525*cosd(j+85.9) +
		9.9359*cosd(2*j+108.9) +
		0.3387*cosd(3*j+105.2)
	hourAngle := 15.0 * (720.0 - trueSolarTime) / 60.0

	declination := 0.3948 -
		23.2559*cosd(j+9.1) -
		0.3915*cosd(2*j+5.4) -
		0.1764*cosd(3*j+26.0)

	return acosd(sind(latitude)*sind(declination) +
		cosd(hourAngle)*cosd(latitude)*cosd(declination))
}

// EquationOfTime returns the equation-of-time correction in minutes for the
// date of ts, for use in local solar time calculations.
func EquationOfTime(ts time.Time) float64 {
	b := 360.0 / 365.0 * (float64(ts.YearDay()) - 81)

	return 9.87*sind(2*b) - 7.53*cosd(b) - 1.5*sind(b)
}

// LocalSolarTimeFrac returns local solar time as a fraction of a day in
// [0, 1).
//
// longitude is in degrees, west negative. tzOffset is the time zone offset
// from UTC in hours. eot is the equation-of-time correction in minutes for
// the date in question. daysDelta is the whole days elapsed since a
// reference date, timeDelta the current time expressed as fractional days
// since the same reference.
func LocalSolarTimeFrac(longitude, tzOffset, eot, daysDelta, timeDelta float64) float64 {
	lstm := 15 * tzOffset // local standard time meridian
	tCorr := (4*(longitude-lstm) + eot) / 60 / 24
	frac := (timeDelta + tzOffset/24 - daysDelta) + tCorr
	if frac > 1 {
		return frac - math.Floor(frac)
	}
	return frac
}
