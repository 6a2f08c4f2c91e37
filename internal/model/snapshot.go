package model

// CPUStat reports utilization and clock information for the whole package.
type CPUStat struct {
	UsagePercent  float64 // aggregate, 0-100
	PhysicalCores int
	LogicalCores  int // includes SMT siblings
	PerCore       []float64
	CurrentMHz    float64
	MinMHz        float64
	MaxMHz        float64
}

// MemoryStat captures RAM pressure at read time.
type MemoryStat struct {
	UsedPercent float64
	FreeBytes   uint64 // bytes immediately available to new allocations
}

// DiskStat is the usage of one mounted filesystem.
type DiskStat struct {
	Path        string
	TotalBytes  uint64
	UsedPercent float64
}

// Family identifies the protocol family of an interface address.
type Family int

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
	FamilyLink
)

// Duplex mirrors the kernel's duplex reporting for a link.
type Duplex int

const (
	DuplexUnknown Duplex = iota
	DuplexHalf
	DuplexFull
)

// Addr is one address bound to an interface. Optional fields are empty when
// the OS reports nothing for them.
type Addr struct {
	Family    Family
	Address   string
	Broadcast string
	Netmask   string
	PTP       string
}

// LinkStat carries link-level interface attributes.
type LinkStat struct {
	Up        bool
	SpeedMbps int
	Duplex    Duplex
	MTU       int
}

// IOStat holds cumulative traffic counters for one interface.
type IOStat struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	ErrIn       uint64
	ErrOut      uint64
	DropIn      uint64
	DropOut     uint64
}

// NIC is one network interface. Link and IO are nil when the OS exposes no
// data for that subsection; the interface still lists its addresses.
type NIC struct {
	Name  string
	Link  *LinkStat
	IO    *IOStat
	Addrs []Addr
}

// TempReading is a single temperature sensor value in degrees Celsius.
// Label falls back to the sensor group name when empty.
type TempReading struct {
	Label    string
	Current  float64
	High     float64
	Critical float64
}

// FanReading is a single fan tachometer value.
type FanReading struct {
	Label      string
	CurrentRPM int
}

// SensorStat groups temperature and fan readings by hardware monitor name.
type SensorStat struct {
	Temps map[string][]TempReading
	Fans  map[string][]FanReading
}

// Empty reports whether no sensor of either kind was found.
func (s SensorStat) Empty() bool { return len(s.Temps) == 0 && len(s.Fans) == 0 }

// Battery shows power state; nil pointers stand in for machines without one.
type Battery struct {
	Percent   float64
	PluggedIn bool
	SecsLeft  int64 // seconds until empty; meaningful only when discharging
}
