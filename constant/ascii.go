package constant

// AsciiArtLogo is the application's banner shown in the root help output.
const AsciiArtLogo = `        _     _ _                   _
 __   _(_) __| | |_ ___  _   _  ___| |__
 \ \ / / |/ _' | __/ _ \| | | |/ __| '_ \
  \ V /| | (_| | || (_) | |_| | (__| | | |
   \_/ |_|\__,_|\__\___/ \__,_|\___|_| |_|`
