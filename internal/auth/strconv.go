package auth

import "strconv"

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func atoi(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
