package cli

import (
        "strconv"
        "strings"
)

func itoa(n int) string { return strconv.Itoa(n) }

func parseBoolFlag(name, v string) (bool, error) {
        b, err := strconv.ParseBool(strings.TrimSpace(v))
        if err != nil {
                return false, errInvalidArgs("--" + name + " wants true or false")
        }
        return b, nil
}
