//go:build polynavdebug

package polynav

const debugAssertions = true
