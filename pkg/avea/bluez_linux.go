//go:build linux

package avea

import (
	"slices"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/aveactl/internal/errors"
)

const (
	bluezService            = "org.bluez"
	gattCharacteristicIface = "org.bluez.GattCharacteristic1"
	getManagedObjects       = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
)

type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// commandObject looks up the command characteristic of a connected bulb in
// the BlueZ object tree
func commandObject(address string) (dbus.BusObject, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.DeviceUnavailablef("failed to connect to system bus: %w", err)
	}

	objects := make(managedObjects)
	if err := conn.Object(bluezService, "/").Call(getManagedObjects, 0).Store(&objects); err != nil {
		return nil, errors.DeviceUnavailablef("failed to list BlueZ objects: %w", err)
	}

	path, err := findCharacteristicPath(objects, address, CharacteristicUUID)
	if err != nil {
		return nil, err
	}
	return conn.Object(bluezService, path), nil
}

// deviceObjectName returns the BlueZ object name of a device, e.g.
// dev_7C_EC_79_1A_2B_3C
func deviceObjectName(address string) string {
	return "dev_" + strings.ReplaceAll(strings.ToUpper(address), ":", "_")
}

func findCharacteristicPath(objects managedObjects, address, uuid string) (dbus.ObjectPath, error) {
	device := "/" + deviceObjectName(address) + "/"

	var paths []string
	for path, ifaces := range objects {
		props, ok := ifaces[gattCharacteristicIface]
		if !ok || !strings.Contains(string(path), device) {
			continue
		}
		if v, ok := props["UUID"].Value().(string); ok && strings.EqualFold(v, uuid) {
			paths = append(paths, string(path))
		}
	}
	if len(paths) == 0 {
		return "", errors.NotFoundf("command characteristic %s on %s", uuid, address)
	}

	// map order is random
	slices.Sort(paths)
	return dbus.ObjectPath(paths[0]), nil
}

func writeRequestOptions() map[string]dbus.Variant {
	return map[string]dbus.Variant{"type": dbus.MakeVariant("request")}
}
