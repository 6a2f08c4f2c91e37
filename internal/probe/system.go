package probe

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rawwerks/sysreport/internal/model"
)

// System reads metrics from the running host via gopsutil, with best-effort
// sysfs reads for what gopsutil does not expose (cpufreq limits, link
// speed/duplex, hwmon sensors, battery).
type System struct {
	sysfs string // sysfs mount point, overridable in tests
}

func New() *System { return &System{sysfs: "/sys"} }

// CPU samples utilization over interval. The two sampled calls mean the
// caller blocks for roughly twice the interval; this is the only blocking
// read in a report run.
func (s *System) CPU(ctx context.Context, interval time.Duration) (model.CPUStat, error) {
	agg, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil || len(agg) == 0 {
		return model.CPUStat{}, classify("cpu utilization", err)
	}
	st := model.CPUStat{UsagePercent: agg[0]}

	st.PerCore, _ = cpu.PercentWithContext(ctx, interval, true)
	st.PhysicalCores, _ = cpu.CountsWithContext(ctx, false)
	st.LogicalCores, _ = cpu.CountsWithContext(ctx, true)

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		st.CurrentMHz = infos[0].Mhz
	}
	if st.CurrentMHz == 0 {
		st.CurrentMHz = s.cpufreqMHz("scaling_cur_freq")
	}
	st.MinMHz = s.cpufreqMHz("cpuinfo_min_freq")
	st.MaxMHz = s.cpufreqMHz("cpuinfo_max_freq")
	return st, nil
}

func (s *System) Memory(ctx context.Context) (model.MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.MemoryStat{}, classify("virtual memory", err)
	}
	return model.MemoryStat{UsedPercent: vm.UsedPercent, FreeBytes: vm.Available}, nil
}

func (s *System) Disk(ctx context.Context, path string) (model.DiskStat, error) {
	if _, err := os.Stat(path); err != nil {
		return model.DiskStat{}, classify("disk usage for "+path, err)
	}
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return model.DiskStat{}, classify("disk usage for "+path, err)
	}
	return model.DiskStat{Path: path, TotalBytes: u.Total, UsedPercent: u.UsedPercent}, nil
}

// Interfaces lists NICs in whatever order the OS returns them. Callers key
// on Name, not position.
func (s *System) Interfaces(ctx context.Context) ([]model.NIC, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, classify("network interfaces", err)
	}

	counters, _ := gnet.IOCountersWithContext(ctx, true)
	ioByName := make(map[string]gnet.IOCountersStat, len(counters))
	for _, c := range counters {
		ioByName[c.Name] = c
	}

	nics := make([]model.NIC, 0, len(ifaces))
	for _, ifc := range ifaces {
		nic := model.NIC{Name: ifc.Name, Link: s.linkStat(ifc)}
		if c, ok := ioByName[ifc.Name]; ok {
			nic.IO = &model.IOStat{
				BytesSent:   c.BytesSent,
				BytesRecv:   c.BytesRecv,
				PacketsSent: c.PacketsSent,
				PacketsRecv: c.PacketsRecv,
				ErrIn:       c.Errin,
				ErrOut:      c.Errout,
				DropIn:      c.Dropin,
				DropOut:     c.Dropout,
			}
		}
		addrs, _ := ifc.Addrs()
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			nic.Addrs = append(nic.Addrs, ipAddr(ifc, ipnet))
		}
		if len(ifc.HardwareAddr) > 0 {
			nic.Addrs = append(nic.Addrs, model.Addr{
				Family:  model.FamilyLink,
				Address: ifc.HardwareAddr.String(),
			})
		}
		nics = append(nics, nic)
	}
	return nics, nil
}

func (s *System) linkStat(ifc net.Interface) *model.LinkStat {
	ls := model.LinkStat{
		Up:  ifc.Flags&net.FlagUp != 0,
		MTU: ifc.MTU,
	}
	base := filepath.Join(s.sysfs, "class/net", ifc.Name)
	if v, err := strconv.Atoi(readTrimmed(filepath.Join(base, "speed"))); err == nil && v > 0 {
		ls.SpeedMbps = v
	}
	switch readTrimmed(filepath.Join(base, "duplex")) {
	case "full":
		ls.Duplex = model.DuplexFull
	case "half":
		ls.Duplex = model.DuplexHalf
	}
	return &ls
}

func ipAddr(ifc net.Interface, ipnet *net.IPNet) model.Addr {
	addr := model.Addr{Address: ipnet.IP.String()}
	if v4 := ipnet.IP.To4(); v4 != nil {
		addr.Family = model.FamilyIPv4
		addr.Netmask = net.IP(mask4(ipnet.Mask)).String()
		if ifc.Flags&net.FlagBroadcast != 0 {
			addr.Broadcast = broadcast4(v4, ipnet.Mask)
		}
	} else {
		addr.Family = model.FamilyIPv6
		addr.Netmask = net.IP(ipnet.Mask).String()
	}
	return addr
}

// mask4 narrows a mask to 4 bytes for dotted-quad printing.
func mask4(m net.IPMask) net.IPMask {
	if len(m) == net.IPv6len {
		return m[12:]
	}
	return m
}

// broadcast4 is ip | ^mask, the directed broadcast of the subnet.
func broadcast4(ip net.IP, mask net.IPMask) string {
	m := mask4(mask)
	if len(m) != net.IPv4len {
		return ""
	}
	b := make(net.IP, net.IPv4len)
	for i := range b {
		b[i] = ip[i] | ^m[i]
	}
	return b.String()
}

// Sensors never fails: each capability that is missing simply contributes
// nothing, and the climate section decides what that means.
func (s *System) Sensors(ctx context.Context) (model.SensorStat, *model.Battery, error) {
	stat := model.SensorStat{
		Temps: make(map[string][]model.TempReading),
		Fans:  make(map[string][]model.FanReading),
	}
	s.readHwmon(&stat)
	if len(stat.Temps) == 0 {
		s.fallbackTemps(ctx, &stat)
	}
	return stat, s.battery(), nil
}

// readHwmon walks /sys/class/hwmon, grouping temp*_input and fan*_input
// readings under each monitor's name file.
func (s *System) readHwmon(stat *model.SensorStat) {
	dirs, _ := filepath.Glob(filepath.Join(s.sysfs, "class/hwmon/hwmon*"))
	for _, dir := range dirs {
		group := readTrimmed(filepath.Join(dir, "name"))
		if group == "" {
			group = filepath.Base(dir)
		}
		temps, _ := filepath.Glob(filepath.Join(dir, "temp*_input"))
		for _, in := range temps {
			milli, err := strconv.ParseFloat(readTrimmed(in), 64)
			if err != nil {
				continue
			}
			prefix := strings.TrimSuffix(in, "_input")
			stat.Temps[group] = append(stat.Temps[group], model.TempReading{
				Label:    readTrimmed(prefix + "_label"),
				Current:  milli / 1000,
				High:     readMilli(prefix + "_max"),
				Critical: readMilli(prefix + "_crit"),
			})
		}
		fans, _ := filepath.Glob(filepath.Join(dir, "fan*_input"))
		for _, in := range fans {
			rpm, err := strconv.Atoi(readTrimmed(in))
			if err != nil {
				continue
			}
			prefix := strings.TrimSuffix(in, "_input")
			stat.Fans[group] = append(stat.Fans[group], model.FanReading{
				Label:      readTrimmed(prefix + "_label"),
				CurrentRPM: rpm,
			})
		}
	}
}

func (s *System) fallbackTemps(ctx context.Context, stat *model.SensorStat) {
	readings, _ := host.SensorsTemperaturesWithContext(ctx)
	for _, r := range readings {
		if r.Temperature == 0 {
			continue
		}
		stat.Temps[r.SensorKey] = append(stat.Temps[r.SensorKey], model.TempReading{
			Current:  r.Temperature,
			High:     r.High,
			Critical: r.Critical,
		})
	}
}

func (s *System) battery() *model.Battery {
	caps, _ := filepath.Glob(filepath.Join(s.sysfs, "class/power_supply/BAT*/capacity"))
	for _, capPath := range caps {
		pct, err := strconv.ParseFloat(readTrimmed(capPath), 64)
		if err != nil {
			continue
		}
		base := filepath.Dir(capPath)
		status := readTrimmed(filepath.Join(base, "status"))
		b := model.Battery{Percent: pct, PluggedIn: status != "Discharging"}
		if !b.PluggedIn {
			b.SecsLeft = secsLeft(base)
		}
		return &b
	}
	return nil
}

// secsLeft estimates time to empty from the energy counters, falling back to
// the charge counters on supplies that report in those units.
func secsLeft(base string) int64 {
	pairs := [][2]string{{"energy_now", "power_now"}, {"charge_now", "current_now"}}
	for _, pair := range pairs {
		now, err1 := strconv.ParseFloat(readTrimmed(filepath.Join(base, pair[0])), 64)
		rate, err2 := strconv.ParseFloat(readTrimmed(filepath.Join(base, pair[1])), 64)
		if err1 != nil || err2 != nil || rate <= 0 {
			continue
		}
		return int64(now / rate * 3600)
	}
	return 0
}

func (s *System) cpufreqMHz(name string) float64 {
	khz, err := strconv.ParseFloat(readTrimmed(filepath.Join(s.sysfs, "devices/system/cpu/cpu0/cpufreq", name)), 64)
	if err != nil {
		return 0
	}
	return khz / 1000
}

func readTrimmed(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readMilli(path string) float64 {
	v, _ := strconv.ParseFloat(readTrimmed(path), 64)
	return v / 1000
}
