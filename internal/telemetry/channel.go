package telemetry

// Channel names a tracked telemetry quantity. The value is the CSV header.
type Channel string

const (
	Altitude     Channel = "ALTITUDE"
	Pressure     Channel = "PRESSURE"
	Voltage      Channel = "VOLTAGE"
	GyroR        Channel = "GYRO_R"
	AccR         Channel = "ACC_R"
	GNSSAltitude Channel = "GNSS_ALTITUDE"
)

// Channels lists the tracked channels in display order.
var Channels = [...]Channel{Altitude, Pressure, Voltage, GyroR, AccR, GNSSAltitude}

// NumChannels is the number of tracked channels.
const NumChannels = len(Channels)

// Title returns the chart title for the channel.
func (c Channel) Title() string {
	switch c {
	case Altitude:
		return "Altitude"
	case Pressure:
		return "Pressure"
	case Voltage:
		return "Voltage"
	case GyroR:
		return "Gyro_R"
	case AccR:
		return "ACC_R"
	case GNSSAltitude:
		return "GNSS Altitude"
	default:
		return string(c)
	}
}

// Unit returns the display unit, or "" when the channel has none.
func (c Channel) Unit() string {
	switch c {
	case Altitude, GNSSAltitude:
		return "m"
	case Pressure:
		return "hPa"
	case Voltage:
		return "V"
	case GyroR:
		return "deg/s"
	case AccR:
		return "m/s2"
	default:
		return ""
	}
}

// Index returns the channel's position in Channels, or -1.
func (c Channel) Index() int {
	for i, ch := range Channels {
		if ch == c {
			return i
		}
	}
	return -1
}
