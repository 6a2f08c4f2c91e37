// Package report renders host metric snapshots as a fixed-width starred
// text report, one independent section per metric category.
package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rawwerks/sysreport/internal/config"
	"github.com/rawwerks/sysreport/internal/model"
	"github.com/rawwerks/sysreport/internal/probe"
)

const programTitle = "USING GOPSUTIL TO RETRIEVE USEFUL SYSTEM INFORMATION"

// Styles apply only with -color; plain output is the default contract.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Reporter runs every section once, in fixed order, against one provider.
type Reporter struct {
	Provider probe.Provider
	Cfg      config.Config
}

// printer latches the first write error so section code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// Run writes the full report to out. A failed metric read degrades its own
// section and never blocks the ones after it; the returned error is non-nil
// only when out itself stops accepting writes.
func (r *Reporter) Run(ctx context.Context, out io.Writer) error {
	p := &printer{w: out}

	p.line("")
	p.line("%s", span())
	p.line("%s", spacer())
	p.line("%s", titleRow(r.styled(titleStyle, programTitle)))
	p.line("%s", spacer())
	p.line("%s", span())

	r.section(p, "CPU INFORMATION", func() error {
		st, err := r.Provider.CPU(ctx, r.Cfg.Interval)
		if err != nil {
			return err
		}
		renderCPU(p, st)
		return nil
	})
	r.section(p, "MEMORY INFORMATION", func() error {
		st, err := r.Provider.Memory(ctx)
		if err != nil {
			return err
		}
		renderMemory(p, st)
		return nil
	})
	r.section(p, "DISK INFORMATION", func() error {
		st, err := r.Provider.Disk(ctx, r.Cfg.DiskPath)
		if err != nil {
			return err
		}
		renderDisk(p, st)
		return nil
	})
	r.section(p, "NETWORK INFORMATION", func() error {
		nics, err := r.Provider.Interfaces(ctx)
		if err != nil {
			return err
		}
		hostname, _ := os.Hostname()
		renderNetwork(p, hostname, nics)
		return nil
	})
	r.section(p, "CLIMATE INFORMATION", func() error {
		st, batt, err := r.Provider.Sensors(ctx)
		if err != nil {
			return err
		}
		renderClimate(p, st, batt)
		return nil
	})
	return p.err
}

func (r *Reporter) section(p *printer, title string, body func() error) {
	p.line("%s", titleRow(r.styled(titleStyle, title)))
	p.line("%s", span())
	if err := body(); err != nil {
		p.line("%s", r.styled(warnStyle,
			fmt.Sprintf("cannot read %s: %v", strings.ToLower(title), err)))
	}
	p.line("%s", span())
}

func (r *Reporter) styled(st lipgloss.Style, s string) string {
	if !r.Cfg.Color {
		return s
	}
	return st.Render(s)
}

func renderCPU(p *printer, st model.CPUStat) {
	p.line("Aggregate CPU usage: %.1f%%", st.UsagePercent)
	p.line("Physical cores:  %d", st.PhysicalCores)
	p.line("Individual core usage:  %s%%", percentList(st.PerCore))
	p.line("Cores including HT:  %d", st.LogicalCores)
	// Frequencies truncate, they do not round.
	p.line("Current, min and max CPU MHz: %d, %d, %d",
		int(st.CurrentMHz), int(st.MinMHz), int(st.MaxMHz))
}

func percentList(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderMemory(p *printer, st model.MemoryStat) {
	p.line("Memory used:  %.1f%%", st.UsedPercent)
	p.line("Free memory (GB): %.1f", BytesToGB(st.FreeBytes))
}

func renderDisk(p *printer, st model.DiskStat) {
	p.line("Disk size (GB): %.1f", BytesToGB(st.TotalBytes))
	p.line("Percent disk used: %.1f", st.UsedPercent)
}

func renderNetwork(p *printer, hostname string, nics []model.NIC) {
	p.line("Host                : %s", hostname)
	for _, nic := range nics {
		p.line("%s:", nic.Name)
		if nic.Link != nil {
			up := "no"
			if nic.Link.Up {
				up = "yes"
			}
			p.line("    stats           : speed=%dMB, duplex=%s, mtu=%d, up=%s",
				nic.Link.SpeedMbps, DuplexLabel(nic.Link.Duplex), nic.Link.MTU, up)
		}
		if nic.IO != nil {
			p.line("    incoming        : bytes=%s, pkts=%d, errs=%d, drops=%d",
				HumanBytes(nic.IO.BytesRecv), nic.IO.PacketsRecv, nic.IO.ErrIn, nic.IO.DropIn)
			p.line("    outgoing        : bytes=%s, pkts=%d, errs=%d, drops=%d",
				HumanBytes(nic.IO.BytesSent), nic.IO.PacketsSent, nic.IO.ErrOut, nic.IO.DropOut)
		}
		for _, a := range nic.Addrs {
			p.line("    %-4s address    : %s", FamilyLabel(a.Family), a.Address)
			if a.Broadcast != "" {
				p.line("         broadcast  : %s", a.Broadcast)
			}
			if a.Netmask != "" {
				p.line("         netmask    : %s", a.Netmask)
			}
			if a.PTP != "" {
				p.line("         p2p        : %s", a.PTP)
			}
		}
		p.line("")
	}
}

func renderClimate(p *printer, st model.SensorStat, batt *model.Battery) {
	if st.Empty() && batt == nil {
		p.line("Cannot read temperature, fans or battery info")
		return
	}

	// Union of temperature and fan group names; sorted for stable output,
	// the contract leaves the order open.
	seen := make(map[string]bool, len(st.Temps)+len(st.Fans))
	for name := range st.Temps {
		seen[name] = true
	}
	for name := range st.Fans {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p.line("%s", name)
		if temps := st.Temps[name]; len(temps) > 0 {
			p.line("    Temperatures:")
			for _, t := range temps {
				p.line("        %-20s %.1f°C (high=%.1f°C, critical=%.1f°C)",
					orGroup(t.Label, name), t.Current, t.High, t.Critical)
			}
		}
		if fans := st.Fans[name]; len(fans) > 0 {
			p.line("    Fans:")
			for _, f := range fans {
				p.line("        %-20s %d RPM", orGroup(f.Label, name), f.CurrentRPM)
			}
		}
	}

	if batt != nil {
		p.line("Battery:")
		p.line("    charge:     %v%%", math.Round(batt.Percent*100)/100)
		if batt.PluggedIn {
			status := "charging"
			if batt.Percent >= 100 {
				status = "fully charged"
			}
			p.line("    status:     %s", status)
			p.line("    plugged in: yes")
		} else {
			p.line("    left:       %s", SecondsToClock(batt.SecsLeft))
			p.line("    status:     discharging")
			p.line("    plugged in: no")
		}
	}
}

func orGroup(label, group string) string {
	if label == "" {
		return group
	}
	return label
}
